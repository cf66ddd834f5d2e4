package repos

import (
	"database/sql/driver"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/cases"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	applog "farmtech/internal/log"
)

// ErrDuplicate reports a unique constraint violation (email, username).
var ErrDuplicate = errors.New("duplicate record")

// tsLayout is fixed width so timestamps sort lexically.
const tsLayout = "2006-01-02T15:04:05.000000Z"

func now() string { return time.Now().UTC().Format(tsLayout) }

func init() {
	// fold(x) is full Unicode case folding; SQLite's LOWER only handles ASCII.
	sqlite.MustRegisterDeterministicScalarFunction("fold", 1, foldFunc)
}

func foldFunc(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return cases.Fold().String(v), nil
	case []byte:
		return cases.Fold().String(string(v)), nil
	default:
		return v, nil
	}
}

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if dsn == ":memory:" {
		// each pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Ensure demo users exist (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL,
  email TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  avatar TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email    ON users(LOWER(email));
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username ON users(LOWER(username));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);

-- Listings
CREATE TABLE IF NOT EXISTS listings(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL,
  location TEXT NOT NULL,
  type TEXT NOT NULL CHECK (type IN ('rent','sale')),
  category TEXT NOT NULL CHECK (category IN ('Tractor','Harvester','Plow','Seeder','Irrigation System','Other')),
  condition TEXT NOT NULL CHECK (condition IN ('New','Good','Average','Needs Repair')),
  rental_price NUMERIC NOT NULL CHECK (rental_price >= 0),
  discount_price NUMERIC NOT NULL DEFAULT 0 CHECK (discount_price >= 0),
  deposit_amount NUMERIC NOT NULL DEFAULT 0 CHECK (deposit_amount >= 0),
  offer INTEGER NOT NULL DEFAULT 0,
  image_urls TEXT NOT NULL DEFAULT '[]',
  user_ref TEXT NOT NULL,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_listings_user         ON listings(user_ref);
CREATE INDEX IF NOT EXISTS idx_listings_type         ON listings(type);
CREATE INDEX IF NOT EXISTS idx_listings_category     ON listings(category);
CREATE INDEX IF NOT EXISTS idx_listings_created_at   ON listings(created_at);
CREATE INDEX IF NOT EXISTS idx_listings_rental_price ON listings(rental_price);
`
	_, err := db.Exec(schema)
	return err
}

// seedUsers ensures the demo owners exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Username, Email, Hash string
	}
	mk := func(id, username, email, raw string) (u, error) {
		h, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
		return u{ID: id, Username: username, Email: email, Hash: string(h)}, err
	}

	var users []u
	for _, s := range [][4]string{
		{"u-ravi", "ravi", "ravi@farmtech.test", "Passw0rd!"},
		{"u-meera", "meera", "meera@farmtech.test", "Passw0rd!"},
	} {
		x, err := mk(s[0], s[1], s[2], s[3])
		if err != nil {
			return err
		}
		users = append(users, x)
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,username,email,password_hash,created_at)
			VALUES(?,?,?,?,?)
			ON CONFLICT DO NOTHING
		`, x.ID, x.Username, x.Email, x.Hash, now()); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM listings`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	applog.Infof("[seed] inserting demo listings")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO listings(id,name,description,location,type,category,condition,
	    rental_price,discount_price,deposit_amount,offer,image_urls,user_ref,created_at,updated_at) VALUES
	  ('eq-001','John Deere 5050D Tractor','50 HP utility tractor, well maintained','Nashik, Maharashtra',
	    'rent','Tractor','Good',2500,0,20000,0,'["/media/agricultural-equipment/eq-001.jpg"]','u-ravi',
	    '2024-01-05T09:00:00.000000Z','2024-01-05T09:00:00.000000Z'),
	  ('eq-002','Mahindra Combine Harvester','Self-propelled harvester for wheat and paddy','Ludhiana, Punjab',
	    'rent','Harvester','Average',8000,7000,50000,1,'["/media/agricultural-equipment/eq-002.jpg"]','u-meera',
	    '2024-02-10T09:00:00.000000Z','2024-02-10T09:00:00.000000Z'),
	  ('eq-003','Two-Bottom Mould Board Plow','Heavy duty plough, fits any TRACTOR above 35 HP','Karnal, Haryana',
	    'sale','Plow','New',1200,0,5000,0,'["/media/agricultural-equipment/eq-003.jpg"]','u-ravi',
	    '2024-03-15T09:00:00.000000Z','2024-03-15T09:00:00.000000Z'),
	  ('eq-004','Precision Seed Drill','9-row seeder with fertilizer box','Indore, Madhya Pradesh',
	    'rent','Seeder','Good',1500,1200,8000,1,'["/media/agricultural-equipment/eq-004.jpg"]','u-meera',
	    '2024-04-20T09:00:00.000000Z','2024-04-20T09:00:00.000000Z'),
	  ('eq-005','Drip Irrigation Kit','Covers one acre; pumps not included','Tractor Road, Anand, Gujarat',
	    'sale','Irrigation System','Needs Repair',600,0,1000,0,'["/media/agricultural-equipment/eq-005.jpg"]','u-ravi',
	    '2024-05-25T09:00:00.000000Z','2024-05-25T09:00:00.000000Z')`)
	return tx.Commit()
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(se.Error(), "UNIQUE")
}
