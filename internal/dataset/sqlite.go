package dataset

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"costpulse/internal/domain/cpih"
	"costpulse/pkg/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS cpih_yoy (
	date       TEXT PRIMARY KEY,
	food       REAL NOT NULL,
	housing    REAL NOT NULL,
	transport  REAL NOT NULL,
	health     REAL NOT NULL,
	recreation REAL NOT NULL,
	misc       REAL NOT NULL,
	headline   REAL NOT NULL
);
`

// SQLiteStore serves the index dataset from a SQLite database, for
// deployments that ingest monthly ONS releases instead of shipping the CSV
// extract. Latest queries storage per call; there is no cache layer.
type SQLiteStore struct {
	db *sqlx.DB
}

// indexRow is the cpih_yoy table row
type indexRow struct {
	Date       string  `db:"date"`
	Food       float64 `db:"food"`
	Housing    float64 `db:"housing"`
	Transport  float64 `db:"transport"`
	Health     float64 `db:"health"`
	Recreation float64 `db:"recreation"`
	Misc       float64 `db:"misc"`
	Headline   float64 `db:"headline"`
}

// NewSQLiteStore opens (creating if needed) the dataset database at path
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDataUnavailable, "open sqlite %s: %v", path, err)
	}
	if err := db.Ping(); err != nil {
		return nil, errors.Wrapf(errors.ErrDataUnavailable, "ping sqlite %s: %v", path, err)
	}

	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) ensureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return errors.Wrapf(errors.ErrDataUnavailable, "ensure schema: %v", err)
	}
	return nil
}

// Latest implements Store
func (s *SQLiteStore) Latest(ctx context.Context) (*cpih.IndexRecord, error) {
	var row indexRow
	err := s.db.GetContext(ctx, &row,
		`SELECT date, food, housing, transport, health, recreation, misc, headline
		 FROM cpih_yoy ORDER BY date DESC LIMIT 1`)
	if err == sql.ErrNoRows {
		return nil, errors.Wrap(errors.ErrDataUnavailable, "dataset is empty")
	}
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDataUnavailable, "query latest record: %v", err)
	}

	date, err := time.Parse("2006-01-02", row.Date)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDataUnavailable, "unparsable date %q", row.Date)
	}

	return &cpih.IndexRecord{
		Date: date,
		Values: map[cpih.Category]float64{
			cpih.CategoryFood:       row.Food,
			cpih.CategoryHousing:    row.Housing,
			cpih.CategoryTransport:  row.Transport,
			cpih.CategoryHealth:     row.Health,
			cpih.CategoryRecreation: row.Recreation,
			cpih.CategoryMisc:       row.Misc,
		},
		Headline: row.Headline,
	}, nil
}

// Insert upserts one monthly record, used by the ingestion path and tests.
// Published records are immutable; the upsert only matters for corrected
// re-releases of the same month.
func (s *SQLiteStore) Insert(ctx context.Context, record *cpih.IndexRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cpih_yoy (date, food, housing, transport, health, recreation, misc, headline)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(date) DO UPDATE SET
			food=excluded.food, housing=excluded.housing, transport=excluded.transport,
			health=excluded.health, recreation=excluded.recreation, misc=excluded.misc,
			headline=excluded.headline`,
		record.Date.Format("2006-01-02"),
		record.Values[cpih.CategoryFood],
		record.Values[cpih.CategoryHousing],
		record.Values[cpih.CategoryTransport],
		record.Values[cpih.CategoryHealth],
		record.Values[cpih.CategoryRecreation],
		record.Values[cpih.CategoryMisc],
		record.Headline,
	)
	return errors.Wrap(err, "insert record")
}

// Close releases the underlying database handle
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
