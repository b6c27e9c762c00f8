package profile

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"devconnect/internal/domain/profile"
	"devconnect/internal/infrastructure/cache"
)

// ErrNotFound is returned for every absent-resource condition, including
// a malformed user id on public lookup.
var ErrNotFound = profile.ErrNotFound

// Cache is the read-cache surface the service uses for the public
// endpoints. A nil cache disables caching.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any) error
	InvalidateProfile(ctx context.Context, userID string)
}

type UpsertInput struct {
	Company        string
	Website        string
	Location       string
	Status         string
	Bio            string
	GithubUsername string
	// Skills is the raw comma-separated input, normalized here.
	Skills string

	Youtube   string
	Twitter   string
	Facebook  string
	Linkedin  string
	Instagram string
}

type EducationInput struct {
	School       string
	Degree       string
	FieldOfStudy string
	From         time.Time
	To           *time.Time
	Current      bool
	Description  string
}

type ExperienceInput struct {
	Title       string
	Company     string
	Location    string
	From        time.Time
	To          *time.Time
	Current     bool
	Description string
}

type Service struct {
	profiles profile.Repository
	cache    Cache
	logger   *log.Logger
}

func NewService(profiles profile.Repository, c Cache, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{profiles: profiles, cache: c, logger: logger}
}

func (s *Service) GetOwn(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	return s.profiles.GetByUserID(ctx, userID)
}

// Upsert creates the subject's profile on first call and applies a partial
// update afterwards: provided scalar fields overwrite, absent ones are
// left untouched, and the social record is rebuilt from the provided keys
// only. Calling it twice with identical input yields identical state.
func (s *Service) Upsert(ctx context.Context, userID uuid.UUID, in UpsertInput) (profile.Profile, error) {
	existing, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, profile.ErrNotFound) {
		return profile.Profile{}, err
	}

	if errors.Is(err, profile.ErrNotFound) {
		p := profile.Profile{
			ID:     uuid.New(),
			UserID: userID,
		}
		applyFields(&p, in)
		if createErr := s.profiles.Create(ctx, p); createErr != nil {
			return profile.Profile{}, createErr
		}
		s.invalidate(ctx, userID)
		return s.profiles.GetByUserID(ctx, userID)
	}

	applyFields(&existing, in)
	if err := s.profiles.UpdateFields(ctx, existing); err != nil {
		return profile.Profile{}, err
	}
	s.invalidate(ctx, userID)
	return s.profiles.GetByUserID(ctx, userID)
}

func (s *Service) List(ctx context.Context) ([]profile.Profile, error) {
	if s.cache != nil {
		var cached []profile.Profile
		if hit, err := s.cache.GetJSON(ctx, cache.ProfileListKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cache.ProfileListKey, profiles); err != nil {
			s.logger.Printf("[Profile] cache set failed: %v", err)
		}
	}
	return profiles, nil
}

// GetByUser resolves a public lookup by an arbitrary user identifier. A
// malformed identifier is reported identically to an absent profile.
func (s *Service) GetByUser(ctx context.Context, rawUserID string) (profile.Profile, error) {
	userID, err := uuid.Parse(strings.TrimSpace(rawUserID))
	if err != nil {
		return profile.Profile{}, ErrNotFound
	}

	key := cache.ProfileUserKey(userID.String())
	if s.cache != nil {
		var cached profile.Profile
		if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return profile.Profile{}, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, p); err != nil {
			s.logger.Printf("[Profile] cache set failed: %v", err)
		}
	}
	return p, nil
}

// DeleteOwn removes the subject's profile and account in one transaction.
func (s *Service) DeleteOwn(ctx context.Context, userID uuid.UUID) error {
	if err := s.profiles.DeleteWithUser(ctx, userID); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

// AddEducation prepends a new entry: the freshest insertion is always at
// position 0 of the sequence.
func (s *Service) AddEducation(ctx context.Context, userID uuid.UUID, in EducationInput) (profile.Profile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return profile.Profile{}, err
	}

	e := profile.Education{
		ID:           uuid.New(),
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         in.From,
		To:           in.To,
		Current:      in.Current,
		Description:  in.Description,
	}
	if err := s.profiles.AddEducation(ctx, p.ID, e); err != nil {
		return profile.Profile{}, err
	}
	s.invalidate(ctx, userID)
	return s.profiles.GetByUserID(ctx, userID)
}

// RemoveEducation deletes exactly one entry by id. An unknown id leaves
// the sequence unchanged and still returns the profile.
func (s *Service) RemoveEducation(ctx context.Context, userID uuid.UUID, rawEntryID string) (profile.Profile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return profile.Profile{}, err
	}

	if entryID, parseErr := uuid.Parse(strings.TrimSpace(rawEntryID)); parseErr == nil {
		if _, err := s.profiles.RemoveEducation(ctx, p.ID, entryID); err != nil {
			return profile.Profile{}, err
		}
		s.invalidate(ctx, userID)
	}
	return s.profiles.GetByUserID(ctx, userID)
}

func (s *Service) AddExperience(ctx context.Context, userID uuid.UUID, in ExperienceInput) (profile.Profile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return profile.Profile{}, err
	}

	e := profile.Experience{
		ID:          uuid.New(),
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        in.From,
		To:          in.To,
		Current:     in.Current,
		Description: in.Description,
	}
	if err := s.profiles.AddExperience(ctx, p.ID, e); err != nil {
		return profile.Profile{}, err
	}
	s.invalidate(ctx, userID)
	return s.profiles.GetByUserID(ctx, userID)
}

func (s *Service) RemoveExperience(ctx context.Context, userID uuid.UUID, rawEntryID string) (profile.Profile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return profile.Profile{}, err
	}

	if entryID, parseErr := uuid.Parse(strings.TrimSpace(rawEntryID)); parseErr == nil {
		if _, err := s.profiles.RemoveExperience(ctx, p.ID, entryID); err != nil {
			return profile.Profile{}, err
		}
		s.invalidate(ctx, userID)
	}
	return s.profiles.GetByUserID(ctx, userID)
}

func (s *Service) invalidate(ctx context.Context, userID uuid.UUID) {
	if s.cache != nil {
		s.cache.InvalidateProfile(ctx, userID.String())
	}
}

// applyFields merges the provided input into p. Only non-empty scalars
// overwrite; the social record is rebuilt from the provided keys so
// absent keys are omitted rather than nulled.
func applyFields(p *profile.Profile, in UpsertInput) {
	if v := strings.TrimSpace(in.Company); v != "" {
		p.Company = v
	}
	if v := strings.TrimSpace(in.Website); v != "" {
		p.Website = v
	}
	if v := strings.TrimSpace(in.Location); v != "" {
		p.Location = v
	}
	if v := strings.TrimSpace(in.Bio); v != "" {
		p.Bio = v
	}
	if v := strings.TrimSpace(in.GithubUsername); v != "" {
		p.GithubUsername = v
	}
	p.Status = strings.TrimSpace(in.Status)
	p.Skills = NormalizeSkills(in.Skills)
	p.Social = profile.Social{
		Youtube:   strings.TrimSpace(in.Youtube),
		Twitter:   strings.TrimSpace(in.Twitter),
		Facebook:  strings.TrimSpace(in.Facebook),
		Linkedin:  strings.TrimSpace(in.Linkedin),
		Instagram: strings.TrimSpace(in.Instagram),
	}
}

// NormalizeSkills turns comma-separated input into a trimmed, de-duplicated
// list that preserves first-seen order.
func NormalizeSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		skill := strings.TrimSpace(part)
		if skill == "" {
			continue
		}
		if _, dup := seen[skill]; dup {
			continue
		}
		seen[skill] = struct{}{}
		out = append(out, skill)
	}
	return out
}
