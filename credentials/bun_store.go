package credentials

import (
	"context"
	"database/sql"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	frigocheck "github.com/frigocheck/go-frigocheck"
)

const (
	keyToken  = "token"
	keyUserID = "user_id"
)

// credentialRecord is one persisted key/value pair. Two rows exist at
// most: the bearer token and the user id.
type credentialRecord struct {
	bun.BaseModel `bun:"table:credentials,alias:cred"`
	Key           string    `bun:"key,pk" json:"key"`
	Value         string    `bun:"value,notnull" json:"value"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero" json:"updated_at"`
}

// BunStore persists credentials in a local sqlite database. It is the
// desktop analog of the original client's browser-local storage.
type BunStore struct {
	db     *bun.DB
	logger frigocheck.Logger
	now    func() time.Time
}

var _ frigocheck.CredentialStore = (*BunStore)(nil)

// BunOption customizes a BunStore.
type BunOption func(*BunStore)

// WithBunLogger overrides the store logger.
func WithBunLogger(logger frigocheck.Logger) BunOption {
	return func(s *BunStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithBunClock injects a custom clock (useful for tests).
func WithBunClock(clock func() time.Time) BunOption {
	return func(s *BunStore) {
		if clock != nil {
			s.now = clock
		}
	}
}

// NewBunStore wraps an existing bun DB. Call Init once before use.
func NewBunStore(db *bun.DB, opts ...BunOption) *BunStore {
	s := &BunStore{
		db:     db,
		logger: noopLogger{},
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Open opens a sqlite database for credential storage and returns the
// bun handle. The DSN follows the sqlite driver's file: syntax.
func Open(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "could not open credentials database")
	}
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// Init creates the credentials table when missing.
func (s *BunStore) Init(ctx context.Context) error {
	if _, err := s.db.NewCreateTable().
		Model((*credentialRecord)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "could not create credentials table")
	}
	return nil
}

// Save writes both values, deriving the user id from the token when it
// was not supplied.
func (s *BunStore) Save(ctx context.Context, token, userID string) error {
	if userID == "" {
		userID = deriveUserID(token, s.logger)
	}

	records := []credentialRecord{
		{Key: keyToken, Value: token, UpdatedAt: s.now()},
		{Key: keyUserID, Value: userID, UpdatedAt: s.now()},
	}

	if _, err := s.db.NewInsert().
		Model(&records).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "could not persist credentials")
	}
	return nil
}

// Read returns whatever is currently persisted. Missing rows yield
// empty values, not an error.
func (s *BunStore) Read(ctx context.Context) (frigocheck.Credentials, error) {
	var records []credentialRecord
	if err := s.db.NewSelect().
		Model(&records).
		Where("key IN (?, ?)", keyToken, keyUserID).
		Scan(ctx); err != nil {
		return frigocheck.Credentials{}, goerrors.Wrap(err, goerrors.CategoryInternal, "could not read credentials")
	}

	creds := frigocheck.Credentials{}
	for _, rec := range records {
		switch rec.Key {
		case keyToken:
			creds.Token = rec.Value
		case keyUserID:
			creds.UserID = rec.Value
		}
	}
	return creds, nil
}

// Clear removes both values. Idempotent: clearing an empty store is a
// no-op.
func (s *BunStore) Clear(ctx context.Context) error {
	if _, err := s.db.NewDelete().
		Model((*credentialRecord)(nil)).
		Where("key IN (?, ?)", keyToken, keyUserID).
		Exec(ctx); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "could not clear credentials")
	}
	return nil
}
