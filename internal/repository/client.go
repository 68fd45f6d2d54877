package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"port-terminal-core/internal/apperr"
	"port-terminal-core/internal/domain"
)

// ClientRepo represents client repository. Clients are not contended by the
// orchestration core, so this repo works directly on the pool.
type ClientRepo struct{ db *pgxpool.Pool }

// NewClientRepo creates a new ClientRepo.
func NewClientRepo(db *pgxpool.Pool) *ClientRepo { return &ClientRepo{db: db} }

// Get - returns client by its ID.
func (r *ClientRepo) Get(ctx context.Context, id int64) (*domain.Client, error) {
	var c domain.Client
	err := r.db.QueryRow(ctx,
		`SELECT client_id, company_name, contact_person, email, phone_number FROM client WHERE client_id=$1`, id,
	).Scan(&c.ID, &c.CompanyName, &c.ContactPerson, &c.Email, &c.PhoneNumber)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client %d: %w", id, err)
	}
	return &c, nil
}

// Create - creates a new client.
func (r *ClientRepo) Create(ctx context.Context, c *domain.Client) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO client(company_name, contact_person, email, phone_number) VALUES($1,$2,$3,$4) RETURNING client_id`,
		c.CompanyName, c.ContactPerson, c.Email, c.PhoneNumber).Scan(&id)
	if err != nil {
		if IsDuplicate(err) {
			return 0, apperr.ErrResourceConflict
		}
		return 0, fmt.Errorf("create client: %w", err)
	}
	return id, nil
}

// UpdateContact applies a partial update to the mutable contact fields and
// returns true if a row was affected. Company identity never changes here.
func (r *ClientRepo) UpdateContact(ctx context.Context, u domain.ClientContactUpdate) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE client
        SET
            contact_person = COALESCE($2, contact_person),
            email          = COALESCE($3, email),
            phone_number   = COALESCE($4, phone_number)
        WHERE client_id = $1
    `, u.ID, u.ContactPerson, u.Email, u.PhoneNumber)
	if err != nil {
		return false, fmt.Errorf("update client %d contact: %w", u.ID, err)
	}
	return ct.RowsAffected() > 0, nil
}
