package store

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/meridian-specialty/underwriting-cli/internal/db"
	"github.com/meridian-specialty/underwriting-cli/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool db.Pool
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection for
// the hot store operations.
var preparedStatements = map[string]string{
	"insert_assessment": `INSERT INTO assessments
		(id, policy_id, named_insured, address, tiv, overall_score, risk_level, recommendation, result, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
	"get_assessment": `SELECT id, policy_id, named_insured, address, tiv, result, created_at
		FROM assessments WHERE id = $1`,
	"delete_assessment": `DELETE FROM assessments WHERE id = $1`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool. Used by tests with pgxmock.
func NewPostgresWithPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS assessments (
	id             TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	policy_id      TEXT NOT NULL,
	named_insured  TEXT NOT NULL,
	address        TEXT NOT NULL,
	tiv            DOUBLE PRECISION NOT NULL DEFAULT 0,
	overall_score  DOUBLE PRECISION NOT NULL,
	risk_level     TEXT NOT NULL,
	recommendation TEXT NOT NULL,
	result         JSONB NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_assessments_policy_id ON assessments(policy_id);
CREATE INDEX IF NOT EXISTS idx_assessments_risk_level ON assessments(risk_level);
CREATE INDEX IF NOT EXISTS idx_assessments_created_at ON assessments(created_at DESC);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveAssessment(ctx context.Context, a model.Assessment) (*model.Assessment, error) {
	a.ID = uuid.New().String()
	a.CreatedAt = time.Now().UTC()

	resultJSON, err := json.Marshal(a.Result)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal result")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO assessments
		 (id, policy_id, named_insured, address, tiv, overall_score, risk_level, recommendation, result, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		a.ID, a.PolicyID, a.NamedInsured, a.Address, a.TIV,
		a.Result.OverallScore, string(a.Result.RiskLevel), string(a.Result.Recommendation),
		resultJSON, a.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert assessment")
	}
	return &a, nil
}

// SaveAssessmentsBulk persists a batch of assessments with a single COPY.
// IDs and timestamps are assigned here, mirroring SaveAssessment.
func (s *PostgresStore) SaveAssessmentsBulk(ctx context.Context, assessments []model.Assessment) (int64, error) {
	now := time.Now().UTC()
	rows := make([][]any, 0, len(assessments))
	for _, a := range assessments {
		resultJSON, err := json.Marshal(a.Result)
		if err != nil {
			return 0, eris.Wrap(err, "postgres: marshal result")
		}
		rows = append(rows, []any{
			uuid.New().String(), a.PolicyID, a.NamedInsured, a.Address, a.TIV,
			a.Result.OverallScore, string(a.Result.RiskLevel), string(a.Result.Recommendation),
			resultJSON, now,
		})
	}
	return db.CopyFrom(ctx, s.pool, "assessments", []string{
		"id", "policy_id", "named_insured", "address", "tiv",
		"overall_score", "risk_level", "recommendation", "result", "created_at",
	}, rows)
}

func (s *PostgresStore) GetAssessment(ctx context.Context, id string) (*model.Assessment, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, policy_id, named_insured, address, tiv, result, created_at
		 FROM assessments WHERE id = $1`,
		id,
	)
	a, err := scanPgAssessment(row)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *PostgresStore) ListAssessments(ctx context.Context, filter AssessmentFilter) ([]model.Assessment, error) {
	query := `SELECT id, policy_id, named_insured, address, tiv, result, created_at
	          FROM assessments WHERE 1=1`
	var args []any

	if filter.PolicyID != "" {
		args = append(args, filter.PolicyID)
		query += ` AND policy_id = $` + strconv.Itoa(len(args))
	}
	if filter.RiskLevel != "" {
		args = append(args, string(filter.RiskLevel))
		query += ` AND risk_level = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	query += ` LIMIT $` + strconv.Itoa(len(args))

	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list assessments")
	}
	defer rows.Close()

	var out []model.Assessment
	for rows.Next() {
		a, err := scanPgAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, eris.Wrap(rows.Err(), "postgres: list assessments iterate")
}

func (s *PostgresStore) DeleteAssessment(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM assessments WHERE id = $1`, id)
	if err != nil {
		return eris.Wrapf(err, "postgres: delete assessment %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("assessment not found: %s", id)
	}
	return nil
}

func scanPgAssessment(row pgx.Row) (*model.Assessment, error) {
	var a model.Assessment
	var resultJSON []byte

	err := row.Scan(&a.ID, &a.PolicyID, &a.NamedInsured, &a.Address, &a.TIV, &resultJSON, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.New("assessment not found")
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: scan assessment")
	}

	if err := json.Unmarshal(resultJSON, &a.Result); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal result")
	}
	return &a, nil
}

