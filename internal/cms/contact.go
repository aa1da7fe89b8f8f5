package cms

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ContactInfo struct {
	ID                 string    `json:"id,omitempty"`
	CompanyName        string    `json:"company_name"`
	CompanyDescription string    `json:"company_description"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	Address            string    `json:"address"`
	UpdatedAt          time.Time `json:"updated_at,omitempty"`
}

// defaultContact is served until an admin saves real contact details.
var defaultContact = ContactInfo{
	CompanyName:        "Akshayam Wellness",
	CompanyDescription: "Your trusted partner in organic wellness products.",
	Email:              "info@akshayamwellness.com",
	Phone:              "+91-9876543210",
	Address:            "123 Wellness Street, Organic City",
}

type ContactRepo struct{ DB *pgxpool.Pool }

func (r *ContactRepo) Get(ctx context.Context) (*ContactInfo, error) {
	var c ContactInfo
	err := r.DB.QueryRow(ctx, `
		SELECT id, company_name, company_description, email, phone, address, updated_at
		FROM contact_info LIMIT 1`,
	).Scan(&c.ID, &c.CompanyName, &c.CompanyDescription, &c.Email, &c.Phone, &c.Address, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		cp := defaultContact
		return &cp, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Update upserts the single contact-info row.
func (r *ContactRepo) Update(ctx context.Context, c *ContactInfo) (*ContactInfo, error) {
	var existingID string
	err := r.DB.QueryRow(ctx, `SELECT id FROM contact_info LIMIT 1`).Scan(&existingID)
	if errors.Is(err, pgx.ErrNoRows) {
		c.ID = uuid.NewString()
		_, err = r.DB.Exec(ctx, `
			INSERT INTO contact_info (id, company_name, company_description, email, phone, address)
			VALUES ($1,$2,$3,$4,$5,$6)`,
			c.ID, c.CompanyName, c.CompanyDescription, c.Email, c.Phone, c.Address)
		if err != nil {
			return nil, err
		}
		return r.Get(ctx)
	}
	if err != nil {
		return nil, err
	}
	_, err = r.DB.Exec(ctx, `
		UPDATE contact_info SET company_name=$2, company_description=$3,
			email=$4, phone=$5, address=$6, updated_at=now()
		WHERE id=$1`,
		existingID, c.CompanyName, c.CompanyDescription, c.Email, c.Phone, c.Address)
	if err != nil {
		return nil, err
	}
	return r.Get(ctx)
}
