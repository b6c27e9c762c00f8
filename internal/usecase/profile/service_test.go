package profile

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	domain "devconnect/internal/domain/profile"
	"devconnect/internal/infrastructure/cache"
)

// memProfileRepo is an in-memory repository honoring the same ordering
// contract as the postgres implementation: entry sequences are returned
// most-recent-insertion-first.
type memProfileRepo struct {
	byUser map[uuid.UUID]*domain.Profile
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{byUser: make(map[uuid.UUID]*domain.Profile)}
}

func (m *memProfileRepo) find(profileID uuid.UUID) *domain.Profile {
	for _, p := range m.byUser {
		if p.ID == profileID {
			return p
		}
	}
	return nil
}

func (m *memProfileRepo) GetByUserID(_ context.Context, userID uuid.UUID) (domain.Profile, error) {
	p, ok := m.byUser[userID]
	if !ok {
		return domain.Profile{}, domain.ErrNotFound
	}
	out := *p
	out.Education = append([]domain.Education(nil), p.Education...)
	out.Experience = append([]domain.Experience(nil), p.Experience...)
	return out, nil
}

func (m *memProfileRepo) List(ctx context.Context) ([]domain.Profile, error) {
	out := make([]domain.Profile, 0, len(m.byUser))
	for userID := range m.byUser {
		p, err := m.GetByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *memProfileRepo) Create(_ context.Context, p domain.Profile) error {
	if _, exists := m.byUser[p.UserID]; exists {
		return errors.New("duplicate profile")
	}
	cp := p
	m.byUser[p.UserID] = &cp
	return nil
}

func (m *memProfileRepo) UpdateFields(_ context.Context, p domain.Profile) error {
	cur := m.find(p.ID)
	if cur == nil {
		return domain.ErrNotFound
	}
	cur.Company = p.Company
	cur.Website = p.Website
	cur.Location = p.Location
	cur.Status = p.Status
	cur.Bio = p.Bio
	cur.GithubUsername = p.GithubUsername
	cur.Skills = p.Skills
	cur.Social = p.Social
	return nil
}

func (m *memProfileRepo) AddEducation(_ context.Context, profileID uuid.UUID, e domain.Education) error {
	p := m.find(profileID)
	if p == nil {
		return domain.ErrNotFound
	}
	p.Education = append([]domain.Education{e}, p.Education...)
	return nil
}

func (m *memProfileRepo) RemoveEducation(_ context.Context, profileID, entryID uuid.UUID) (int64, error) {
	p := m.find(profileID)
	if p == nil {
		return 0, domain.ErrNotFound
	}
	for i, e := range p.Education {
		if e.ID == entryID {
			p.Education = append(p.Education[:i], p.Education[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (m *memProfileRepo) AddExperience(_ context.Context, profileID uuid.UUID, e domain.Experience) error {
	p := m.find(profileID)
	if p == nil {
		return domain.ErrNotFound
	}
	p.Experience = append([]domain.Experience{e}, p.Experience...)
	return nil
}

func (m *memProfileRepo) RemoveExperience(_ context.Context, profileID, entryID uuid.UUID) (int64, error) {
	p := m.find(profileID)
	if p == nil {
		return 0, domain.ErrNotFound
	}
	for i, e := range p.Experience {
		if e.ID == entryID {
			p.Experience = append(p.Experience[:i], p.Experience[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (m *memProfileRepo) DeleteWithUser(_ context.Context, userID uuid.UUID) error {
	if _, ok := m.byUser[userID]; !ok {
		return nil
	}
	delete(m.byUser, userID)
	return nil
}

// jsonCache stores values through a real JSON round-trip, the same way the
// redis cache does, so serialization losses show up in tests.
type jsonCache struct {
	store map[string][]byte
}

func newJSONCache() *jsonCache {
	return &jsonCache{store: make(map[string][]byte)}
}

func (c *jsonCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *jsonCache) SetJSON(_ context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}

func (c *jsonCache) InvalidateProfile(_ context.Context, userID string) {
	delete(c.store, cache.ProfileListKey)
	delete(c.store, cache.ProfileUserKey(userID))
}

func TestNormalizeSkills(t *testing.T) {
	got := NormalizeSkills("js, node , react")
	want := []string{"js", "node", "react"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNormalizeSkills_DropsEmptiesAndDuplicates(t *testing.T) {
	got := NormalizeSkills(" go ,, go , , sql")
	want := []string{"go", "sql"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestUpsert_CreatesThenUpdatesInPlace(t *testing.T) {
	repo := newMemProfileRepo()
	svc := NewService(repo, nil, nil)
	userID := uuid.New()

	first, err := svc.Upsert(context.Background(), userID, UpsertInput{
		Status: "Developer",
		Skills: "go, sql",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if first.Status != "Developer" {
		t.Fatalf("unexpected status %q", first.Status)
	}

	second, err := svc.Upsert(context.Background(), userID, UpsertInput{
		Status:  "Senior Developer",
		Skills:  "go",
		Company: "Acme",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected update in place, got new profile")
	}
	if second.Company != "Acme" || second.Status != "Senior Developer" {
		t.Fatalf("partial update not applied: %+v", second)
	}
	if len(repo.byUser) != 1 {
		t.Fatalf("expected exactly one stored profile, got %d", len(repo.byUser))
	}
}

func TestUpsert_IdempotentUnderIdenticalInput(t *testing.T) {
	repo := newMemProfileRepo()
	svc := NewService(repo, nil, nil)
	userID := uuid.New()

	in := UpsertInput{Status: "Developer", Skills: "js, node , react", Twitter: "https://twitter.com/dev"}

	first, err := svc.Upsert(context.Background(), userID, in)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	second, err := svc.Upsert(context.Background(), userID, in)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if !reflect.DeepEqual(first.Skills, second.Skills) || first.Status != second.Status || first.Social != second.Social {
		t.Fatalf("expected identical state, got %+v vs %+v", first, second)
	}
	if len(repo.byUser) != 1 {
		t.Fatalf("expected one profile, got %d", len(repo.byUser))
	}
}

func TestUpsert_SocialBuiltFromProvidedKeysOnly(t *testing.T) {
	repo := newMemProfileRepo()
	svc := NewService(repo, nil, nil)
	userID := uuid.New()

	p, err := svc.Upsert(context.Background(), userID, UpsertInput{
		Status:  "Developer",
		Skills:  "go",
		Youtube: "https://youtube.com/@dev",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.Social.Youtube == "" {
		t.Fatalf("expected youtube link to be set")
	}
	if p.Social.Twitter != "" || p.Social.Facebook != "" {
		t.Fatalf("expected absent keys to stay empty: %+v", p.Social)
	}
}

func TestAddEducation_PrependsMostRecentFirst(t *testing.T) {
	repo := newMemProfileRepo()
	svc := NewService(repo, nil, nil)
	userID := uuid.New()

	if _, err := svc.Upsert(context.Background(), userID, UpsertInput{Status: "Dev", Skills: "go"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	from := time.Date(2015, 9, 1, 0, 0, 0, 0, time.UTC)
	schools := []string{"First U", "Second U", "Third U"}
	for _, school := range schools {
		if _, err := svc.AddEducation(context.Background(), userID, EducationInput{
			School: school, Degree: "BSc", FieldOfStudy: "CS", From: from,
		}); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	}

	p, err := svc.GetOwn(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(p.Education) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(p.Education))
	}
	for i, want := range []string{"Third U", "Second U", "First U"} {
		if p.Education[i].School != want {
			t.Fatalf("position %d: expected %q, got %q", i, want, p.Education[i].School)
		}
	}
}

func TestRemoveEducation_UnknownIDIsNoOp(t *testing.T) {
	repo := newMemProfileRepo()
	svc := NewService(repo, nil, nil)
	userID := uuid.New()

	if _, err := svc.Upsert(context.Background(), userID, UpsertInput{Status: "Dev", Skills: "go"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := svc.AddEducation(context.Background(), userID, EducationInput{
		School: "U", Degree: "BSc", FieldOfStudy: "CS", From: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	p, err := svc.RemoveEducation(context.Background(), userID, uuid.NewString())
	if err != nil {
		t.Fatalf("expected no error on unknown id, got %v", err)
	}
	if len(p.Education) != 1 {
		t.Fatalf("expected sequence unchanged, got %d entries", len(p.Education))
	}

	p, err = svc.RemoveEducation(context.Background(), userID, "not-a-uuid")
	if err != nil {
		t.Fatalf("expected no error on malformed id, got %v", err)
	}
	if len(p.Education) != 1 {
		t.Fatalf("expected sequence unchanged, got %d entries", len(p.Education))
	}
}

func TestRemoveExperience_RemovesExactlyOne(t *testing.T) {
	repo := newMemProfileRepo()
	svc := NewService(repo, nil, nil)
	userID := uuid.New()

	if _, err := svc.Upsert(context.Background(), userID, UpsertInput{Status: "Dev", Skills: "go"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	from := time.Now().UTC()
	for _, title := range []string{"Junior", "Mid", "Senior"} {
		if _, err := svc.AddExperience(context.Background(), userID, ExperienceInput{
			Title: title, Company: "Acme", From: from,
		}); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	}

	p, _ := svc.GetOwn(context.Background(), userID)
	target := p.Experience[1]

	p, err := svc.RemoveExperience(context.Background(), userID, target.ID.String())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(p.Experience) != 2 {
		t.Fatalf("expected 2 entries after removal, got %d", len(p.Experience))
	}
	for _, e := range p.Experience {
		if e.ID == target.ID {
			t.Fatalf("removed entry still present")
		}
	}
}

func TestGetByUser_MalformedIDTreatedAsNotFound(t *testing.T) {
	svc := NewService(newMemProfileRepo(), nil, nil)

	_, err := svc.GetByUser(context.Background(), "definitely-not-a-uuid")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteOwn_ThenGetOwnNotFound(t *testing.T) {
	repo := newMemProfileRepo()
	svc := NewService(repo, nil, nil)
	userID := uuid.New()

	if _, err := svc.Upsert(context.Background(), userID, UpsertInput{Status: "Dev", Skills: "go"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := svc.DeleteOwn(context.Background(), userID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if _, err := svc.GetOwn(context.Background(), userID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestList_EmptyIsEmptySlice(t *testing.T) {
	svc := NewService(newMemProfileRepo(), nil, nil)

	profiles, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if profiles == nil || len(profiles) != 0 {
		t.Fatalf("expected empty slice, got %#v", profiles)
	}
}

func TestList_CarriesDenormalizedOwnerFields(t *testing.T) {
	repo := newMemProfileRepo()
	userID := uuid.New()
	repo.byUser[userID] = &domain.Profile{
		ID:     uuid.New(),
		UserID: userID,
		Status: "Developer",
		Skills: []string{"go"},
		Owner: domain.Owner{
			ID:     userID,
			Name:   "Jane Doe",
			Avatar: "https://www.gravatar.com/avatar/abc123?s=200&r=pg&d=mm",
		},
	}
	svc := NewService(repo, newJSONCache(), nil)

	profiles, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(profiles) != 1 {
		t.Fatalf("expected 1 profile, got %d", len(profiles))
	}
	if profiles[0].Owner.Name != "Jane Doe" || profiles[0].Owner.Avatar == "" {
		t.Fatalf("expected denormalized owner fields, got %+v", profiles[0].Owner)
	}

	// The second call is served from the cached JSON. The raw user id is
	// not serialized, but the owner record must survive the round-trip.
	repo.byUser = make(map[uuid.UUID]*domain.Profile)

	cached, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(cached) != 1 {
		t.Fatalf("expected cached list of 1, got %d", len(cached))
	}
	if cached[0].UserID != uuid.Nil {
		t.Fatalf("expected raw user id to be dropped from the wire form, got %s", cached[0].UserID)
	}
	if cached[0].Owner.Name != "Jane Doe" || cached[0].Owner.Avatar == "" {
		t.Fatalf("owner fields lost in cache round-trip: %+v", cached[0].Owner)
	}
}

func TestGetByUser_OwnerSurvivesCacheRoundTrip(t *testing.T) {
	repo := newMemProfileRepo()
	userID := uuid.New()
	repo.byUser[userID] = &domain.Profile{
		ID:     uuid.New(),
		UserID: userID,
		Status: "Developer",
		Skills: []string{"go"},
		Owner:  domain.Owner{ID: userID, Name: "Jane Doe", Avatar: "https://example.com/a.png"},
	}
	svc := NewService(repo, newJSONCache(), nil)

	if _, err := svc.GetByUser(context.Background(), userID.String()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	repo.byUser = make(map[uuid.UUID]*domain.Profile)

	p, err := svc.GetByUser(context.Background(), userID.String())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.Owner.Name != "Jane Doe" || p.Owner.Avatar != "https://example.com/a.png" {
		t.Fatalf("owner fields lost in cache round-trip: %+v", p.Owner)
	}
}
