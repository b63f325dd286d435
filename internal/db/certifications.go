package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/careeridream/backend/internal/profile"
)

func scanCertification(row pgx.Row) (*profile.Certification, error) {
	var c profile.Certification
	var issued, expires *time.Time
	err := row.Scan(&c.ID, &c.Name, &c.Issuer, &issued, &expires, &c.CredentialURL, &c.Order)
	if err != nil {
		return nil, err
	}
	c.IssueDate = dateVal(issued)
	c.ExpirationDate = dateVal(expires)
	return &c, nil
}

const certificationColumns = `id, name, issuer, issue_date, expiration_date, credential_url, ord`

// ListCertifications returns a profile's certifications in stored order.
func (db *DB) ListCertifications(ctx context.Context, profileID uuid.UUID) ([]profile.Certification, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+certificationColumns+` FROM certifications
		 WHERE profile_id = $1 ORDER BY ord, id`,
		profileID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list certifications: %w", err)
	}
	defer rows.Close()

	certifications := []profile.Certification{}
	for rows.Next() {
		c, err := scanCertification(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan certification: %w", err)
		}
		certifications = append(certifications, *c)
	}
	return certifications, rows.Err()
}

// CreateCertification inserts one certification and refreshes the
// completeness score.
func (db *DB) CreateCertification(ctx context.Context, profileID uuid.UUID, in *profile.CertificationInput) (*profile.Certification, error) {
	var created *profile.Certification
	err := db.inTx(ctx, func(tx pgx.Tx) error {
		var err error
		created, err = scanCertification(tx.QueryRow(ctx,
			`INSERT INTO certifications (profile_id, name, issuer, issue_date, expiration_date, credential_url, ord)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 RETURNING `+certificationColumns,
			profileID, in.Name, in.Issuer,
			dateArg(in.IssueDate), dateArg(in.ExpirationDate), in.CredentialURL, in.Order,
		))
		if err != nil {
			return fmt.Errorf("failed to create certification: %w", err)
		}
		_, _, err = recomputeCompletenessTx(ctx, tx, profileID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateCertification replaces one certification's fields. The row must
// belong to the given profile.
func (db *DB) UpdateCertification(ctx context.Context, profileID, id uuid.UUID, in *profile.CertificationInput) (*profile.Certification, error) {
	updated, err := scanCertification(db.pool.QueryRow(ctx,
		`UPDATE certifications SET name = $3, issuer = $4,
			issue_date = $5, expiration_date = $6, credential_url = $7, ord = $8
		 WHERE id = $2 AND profile_id = $1
		 RETURNING `+certificationColumns,
		profileID, id, in.Name, in.Issuer,
		dateArg(in.IssueDate), dateArg(in.ExpirationDate), in.CredentialURL, in.Order,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update certification: %w", err)
	}
	return updated, nil
}

// DeleteCertification removes one certification and refreshes the
// completeness score.
func (db *DB) DeleteCertification(ctx context.Context, profileID, id uuid.UUID) error {
	return db.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`DELETE FROM certifications WHERE id = $2 AND profile_id = $1`,
			profileID, id,
		)
		if err != nil {
			return fmt.Errorf("failed to delete certification: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		_, _, err = recomputeCompletenessTx(ctx, tx, profileID)
		return err
	})
}

func replaceCertificationsTx(ctx context.Context, q querier, profileID uuid.UUID, items []profile.CertificationInput) error {
	if _, err := q.Exec(ctx, `DELETE FROM certifications WHERE profile_id = $1`, profileID); err != nil {
		return fmt.Errorf("failed to clear certifications: %w", err)
	}
	for _, in := range items {
		if _, err := q.Exec(ctx,
			`INSERT INTO certifications (profile_id, name, issuer, issue_date, expiration_date, credential_url, ord)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			profileID, in.Name, in.Issuer,
			dateArg(in.IssueDate), dateArg(in.ExpirationDate), in.CredentialURL, in.Order,
		); err != nil {
			return fmt.Errorf("failed to insert certification: %w", err)
		}
	}
	return nil
}
