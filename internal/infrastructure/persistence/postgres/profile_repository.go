package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"devconnect/internal/database"
	"devconnect/internal/domain/profile"
	"devconnect/internal/domain/user"
)

type ProfileRepository struct {
	db database.DB
}

func NewProfileRepository(db database.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const profileColumns = `
	p.id, p.user_id, p.company, p.website, p.location, p.status, p.bio,
	p.github_username, p.skills, p.social, p.created_at, p.updated_at,
	u.id, u.name, u.avatar`

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+profileColumns+`
		 FROM profiles p
		 JOIN users u ON u.id = p.user_id
		 WHERE p.user_id = $1`,
		userID,
	)

	p, err := scanProfile(row)
	if err != nil {
		return profile.Profile{}, err
	}

	if err := r.loadEntries(ctx, []*profile.Profile{&p}); err != nil {
		return profile.Profile{}, err
	}
	return p, nil
}

func (r *ProfileRepository) List(ctx context.Context) ([]profile.Profile, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+profileColumns+`
		 FROM profiles p
		 JOIN users u ON u.id = p.user_id
		 ORDER BY p.created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := make([]profile.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs := make([]*profile.Profile, len(profiles))
	for i := range profiles {
		refs[i] = &profiles[i]
	}
	if err := r.loadEntries(ctx, refs); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *ProfileRepository) Create(ctx context.Context, p profile.Profile) error {
	social, err := json.Marshal(p.Social)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO profiles
			(id, user_id, company, website, location, status, bio, github_username, skills, social)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.UserID, p.Company, p.Website, p.Location, p.Status, p.Bio,
		p.GithubUsername, p.Skills, social,
	)
	return err
}

func (r *ProfileRepository) UpdateFields(ctx context.Context, p profile.Profile) error {
	social, err := json.Marshal(p.Social)
	if err != nil {
		return err
	}

	n, err := r.db.Exec(ctx,
		`UPDATE profiles SET
			company = $2, website = $3, location = $4, status = $5, bio = $6,
			github_username = $7, skills = $8, social = $9, updated_at = now()
		 WHERE id = $1`,
		p.ID, p.Company, p.Website, p.Location, p.Status, p.Bio,
		p.GithubUsername, p.Skills, social,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return profile.ErrNotFound
	}
	return nil
}

func (r *ProfileRepository) AddEducation(ctx context.Context, profileID uuid.UUID, e profile.Education) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO profile_education
			(id, profile_id, school, degree, field_of_study, from_date, to_date, current, description)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.ID, profileID, e.School, e.Degree, e.FieldOfStudy, e.From, e.To, e.Current, e.Description,
	)
	return err
}

func (r *ProfileRepository) RemoveEducation(ctx context.Context, profileID, entryID uuid.UUID) (int64, error) {
	return r.db.Exec(ctx,
		`DELETE FROM profile_education WHERE id = $1 AND profile_id = $2`,
		entryID, profileID,
	)
}

func (r *ProfileRepository) AddExperience(ctx context.Context, profileID uuid.UUID, e profile.Experience) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO profile_experience
			(id, profile_id, title, company, location, from_date, to_date, current, description)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.ID, profileID, e.Title, e.Company, e.Location, e.From, e.To, e.Current, e.Description,
	)
	return err
}

func (r *ProfileRepository) RemoveExperience(ctx context.Context, profileID, entryID uuid.UUID) (int64, error) {
	return r.db.Exec(ctx,
		`DELETE FROM profile_experience WHERE id = $1 AND profile_id = $2`,
		entryID, profileID,
	)
}

// DeleteWithUser removes the subject's profile and user row atomically.
// Education and experience rows go with the profile via ON DELETE CASCADE.
func (r *ProfileRepository) DeleteWithUser(ctx context.Context, userID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID); err != nil {
		return err
	}

	n, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}

	return tx.Commit(ctx)
}

type profileRow interface {
	Scan(dest ...any) error
}

func scanProfile(row profileRow) (profile.Profile, error) {
	var (
		p      profile.Profile
		social []byte
	)
	err := row.Scan(
		&p.ID, &p.UserID, &p.Company, &p.Website, &p.Location, &p.Status, &p.Bio,
		&p.GithubUsername, &p.Skills, &social, &p.CreatedAt, &p.UpdatedAt,
		&p.Owner.ID, &p.Owner.Name, &p.Owner.Avatar,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.Profile{}, profile.ErrNotFound
		}
		return profile.Profile{}, err
	}

	if len(social) > 0 {
		if err := json.Unmarshal(social, &p.Social); err != nil {
			return profile.Profile{}, err
		}
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	p.Education = []profile.Education{}
	p.Experience = []profile.Experience{}
	return p, nil
}

// loadEntries populates the education and experience sequences for the
// given profiles in two batched queries, ordered newest insertion first.
func (r *ProfileRepository) loadEntries(ctx context.Context, profiles []*profile.Profile) error {
	if len(profiles) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(profiles))
	byID := make(map[uuid.UUID]*profile.Profile, len(profiles))
	for i, p := range profiles {
		ids[i] = p.ID
		byID[p.ID] = p
	}

	rows, err := r.db.Query(ctx,
		`SELECT profile_id, id, school, degree, field_of_study, from_date, to_date, current, description
		 FROM profile_education
		 WHERE profile_id = ANY($1)
		 ORDER BY seq DESC`,
		ids,
	)
	if err != nil {
		return err
	}
	for rows.Next() {
		var (
			pid uuid.UUID
			e   profile.Education
		)
		if err := rows.Scan(&pid, &e.ID, &e.School, &e.Degree, &e.FieldOfStudy, &e.From, &e.To, &e.Current, &e.Description); err != nil {
			rows.Close()
			return err
		}
		if p, ok := byID[pid]; ok {
			p.Education = append(p.Education, e)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.db.Query(ctx,
		`SELECT profile_id, id, title, company, location, from_date, to_date, current, description
		 FROM profile_experience
		 WHERE profile_id = ANY($1)
		 ORDER BY seq DESC`,
		ids,
	)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			pid uuid.UUID
			e   profile.Experience
		)
		if err := rows.Scan(&pid, &e.ID, &e.Title, &e.Company, &e.Location, &e.From, &e.To, &e.Current, &e.Description); err != nil {
			return err
		}
		if p, ok := byID[pid]; ok {
			p.Experience = append(p.Experience, e)
		}
	}
	return rows.Err()
}

var _ profile.Repository = (*ProfileRepository)(nil)
