package repository

import (
	"context"

	"github.com/danaingraham/wanderplan-sub002/internal/models"
)

type DestinationRepository struct {
	db DBTX
}

func NewDestinationRepository(db DBTX) *DestinationRepository {
	return &DestinationRepository{db: db}
}

func (r *DestinationRepository) ListAll(ctx context.Context) ([]models.Destination, error) {
	query := `
		SELECT id, name, country, tags, adventure_affinity, culture_affinity,
			   luxury_affinity, social_affinity, relaxation_affinity,
			   culinary_affinity, created_at
		FROM destinations
		ORDER BY name
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var destinations []models.Destination
	for rows.Next() {
		var dest models.Destination
		if err := rows.Scan(
			&dest.ID,
			&dest.Name,
			&dest.Country,
			&dest.Tags,
			&dest.AdventureAffinity,
			&dest.CultureAffinity,
			&dest.LuxuryAffinity,
			&dest.SocialAffinity,
			&dest.RelaxationAffinity,
			&dest.CulinaryAffinity,
			&dest.CreatedAt,
		); err != nil {
			return nil, err
		}
		destinations = append(destinations, dest)
	}
	return destinations, rows.Err()
}
