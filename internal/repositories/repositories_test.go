package repositories_test

import (
	"testing"
	"time"

	"subtrack/internal/models"
	"subtrack/internal/repositories"
	"subtrack/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	owner = "11111111-1111-1111-1111-111111111111"
	other = "22222222-2222-2222-2222-222222222222"
	org   = "org-x"
)

func newSubscription(company string, createdAt time.Time) *models.Subscription {
	value := 9.99
	return &models.Subscription{
		BaseModel: models.BaseModel{CreatedAt: createdAt},
		UserID:    owner,
		Company:   company,
		Frequency: 1,
		Value:     &value,
		Currency:  "USD",
		Cycle:     models.CycleMonthly,
		Type:      models.TypeSubscription,
		Recurring: true,
	}
}

func createCategory(t *testing.T, db *gorm.DB, name, userID string, orgID *string) *models.Category {
	t.Helper()
	c := &models.Category{Name: name, UserID: userID, OrganizationID: orgID}
	require.NoError(t, repositories.NewCategoryRepository().Create(db, c))
	return c
}

func TestSubscriptionRepository_CreateKeepsTagOrder(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewSubscriptionRepository()
	tags := helpers.SeedTags(t, db, owner, "", "alpha", "beta", "gamma")

	sub := newSubscription("Netflix", time.Now().UTC())
	order := []string{tags[2], tags[0], tags[1]}
	require.NoError(t, repo.Create(db, sub, order))
	require.NotEmpty(t, sub.ID)

	found, err := repo.FindByID(db, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, order, found.TagIDs())

	_, err = repo.FindByID(db, "missing")
	assert.ErrorIs(t, err, repositories.ErrSubscriptionNotFound)
}

func TestSubscriptionRepository_ListAndCountScope(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewSubscriptionRepository()
	base := time.Now().UTC().Add(-time.Hour)

	streaming := createCategory(t, db, "Streaming", owner, nil)
	orgID := org

	netflix := newSubscription("Netflix", base)
	netflix.CategoryID = &streaming.ID
	require.NoError(t, repo.Create(db, netflix, nil))

	gym := newSubscription("Gym", base.Add(time.Minute))
	require.NoError(t, repo.Create(db, gym, nil))

	shared := newSubscription("Slack", base.Add(2*time.Minute))
	shared.OrganizationID = &orgID
	require.NoError(t, repo.Create(db, shared, nil))

	foreign := newSubscription("Spotify", base.Add(3*time.Minute))
	foreign.UserID = other
	require.NoError(t, repo.Create(db, foreign, nil))

	tests := []struct {
		name   string
		filter repositories.SubscriptionFilter
		want   []string
	}{
		{"personal newest first", repositories.SubscriptionFilter{UserID: owner}, []string{"Gym", "Netflix"}},
		{"organization", repositories.SubscriptionFilter{UserID: owner, OrganizationID: org}, []string{"Slack"}},
		{"query is case-insensitive", repositories.SubscriptionFilter{UserID: owner, Query: "NETF"}, []string{"Netflix"}},
		{"category", repositories.SubscriptionFilter{UserID: owner, CategoryID: streaming.ID}, []string{"Netflix"}},
		{"all owners", repositories.SubscriptionFilter{AllOwners: true}, []string{"Spotify", "Slack", "Gym", "Netflix"}},
		{"pagination", repositories.SubscriptionFilter{AllOwners: true, Limit: 2, Offset: 1}, []string{"Slack", "Gym"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subs, err := repo.List(db, tt.filter)
			require.NoError(t, err)

			names := make([]string, 0, len(subs))
			for _, s := range subs {
				names = append(names, s.Company)
			}
			assert.Equal(t, tt.want, names)

			if tt.filter.Limit == 0 {
				count, err := repo.Count(db, tt.filter)
				require.NoError(t, err)
				assert.Equal(t, int64(len(tt.want)), count)
			}
		})
	}
}

// TestSubscriptionRepository_QueryMatchesWildcardsLiterally - % и _ в строке поиска ищутся как обычные символы
func TestSubscriptionRepository_QueryMatchesWildcardsLiterally(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewSubscriptionRepository()
	base := time.Now().UTC().Add(-time.Hour)

	require.NoError(t, repo.Create(db, newSubscription("Netflix", base), nil))
	require.NoError(t, repo.Create(db, newSubscription("100% Pure", base.Add(time.Minute)), nil))
	require.NoError(t, repo.Create(db, newSubscription("Yes!Box", base.Add(2*time.Minute)), nil))

	tests := []struct {
		query string
		want  int64
	}{
		{"_", 0},
		{"%", 1},
		{"0%", 1},
		{"!", 1},
		{"!b", 1},
		{"net", 1},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			count, err := repo.Count(db, repositories.SubscriptionFilter{UserID: owner, Query: tt.query})
			require.NoError(t, err)
			assert.Equal(t, tt.want, count)
		})
	}
}

func TestSubscriptionRepository_PatchAndReplace(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewSubscriptionRepository()
	tags := helpers.SeedTags(t, db, owner, "", "one", "two")
	category := createCategory(t, db, "Tools", owner, nil)
	notes := "shared with family"

	sub := newSubscription("Notion", time.Now().UTC())
	sub.CategoryID = &category.ID
	sub.Notes = &notes
	require.NoError(t, repo.Create(db, sub, tags))

	require.NoError(t, repo.Patch(db, sub.ID, map[string]interface{}{"frequency": 3}, nil))
	patched := helpers.LoadSubscription(t, db, sub.ID)
	assert.Equal(t, 3, patched.Frequency)
	assert.Equal(t, "Notion", patched.Company)
	assert.Equal(t, tags, patched.TagIDs())

	replacement := newSubscription("Notion Plus", sub.CreatedAt)
	replacement.ID = sub.ID
	require.NoError(t, repo.Replace(db, replacement, []string{tags[1]}))

	replaced := helpers.LoadSubscription(t, db, sub.ID)
	assert.Equal(t, "Notion Plus", replaced.Company)
	assert.Equal(t, 1, replaced.Frequency)
	assert.Nil(t, replaced.CategoryID)
	assert.Nil(t, replaced.Notes)
	assert.Equal(t, []string{tags[1]}, replaced.TagIDs())

	missing := newSubscription("Ghost", time.Now().UTC())
	missing.ID = "missing"
	assert.ErrorIs(t, repo.Replace(db, missing, nil), repositories.ErrSubscriptionNotFound)
	assert.ErrorIs(t, repo.Patch(db, "missing", map[string]interface{}{"frequency": 2}, nil), repositories.ErrSubscriptionNotFound)
}

func TestSubscriptionRepository_DeleteRemovesTags(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewSubscriptionRepository()
	tags := helpers.SeedTags(t, db, owner, "", "one")

	sub := newSubscription("Netflix", time.Now().UTC())
	require.NoError(t, repo.Create(db, sub, tags))

	require.NoError(t, repo.Delete(db, sub.ID))
	assert.Zero(t, helpers.CountRows(t, db, &models.SubscriptionTag{}, "subscription_id = ?", sub.ID))
	assert.ErrorIs(t, repo.Delete(db, sub.ID), repositories.ErrSubscriptionNotFound)
}

func TestCategoryRepository_ListWithCounts(t *testing.T) {
	db := helpers.NewTestDB(t)
	subs := repositories.NewSubscriptionRepository()
	categories := repositories.NewCategoryRepository()
	orgID := org

	video := createCategory(t, db, "Video", owner, nil)
	createCategory(t, db, "Audio", owner, nil)
	createCategory(t, db, "Team", owner, &orgID)
	createCategory(t, db, "Theirs", other, nil)

	for i := 0; i < 2; i++ {
		s := newSubscription("Stream", time.Now().UTC())
		s.CategoryID = &video.ID
		require.NoError(t, subs.Create(db, s, nil))
	}

	list, err := categories.ListWithCounts(db, repositories.CategoryScope{UserID: owner})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Audio", list[0].Name)
	assert.Zero(t, list[0].SubscriptionCount)
	assert.Equal(t, "Video", list[1].Name)
	assert.Equal(t, int64(2), list[1].SubscriptionCount)

	options, err := categories.ListOptions(db, repositories.CategoryScope{OrganizationID: org})
	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, "Team", options[0].Name)

	all, err := categories.ListWithCounts(db, repositories.CategoryScope{All: true})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	empty, err := categories.ListWithCounts(db, repositories.CategoryScope{UserID: "nobody"})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestCategoryRepository_RenameAndDelete(t *testing.T) {
	db := helpers.NewTestDB(t)
	subs := repositories.NewSubscriptionRepository()
	categories := repositories.NewCategoryRepository()

	category := createCategory(t, db, "Streaming", owner, nil)
	sub := newSubscription("Netflix", time.Now().UTC())
	sub.CategoryID = &category.ID
	require.NoError(t, subs.Create(db, sub, nil))

	require.NoError(t, categories.Rename(db, category.ID, "Video"))
	renamed, err := categories.FindByID(db, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Video", renamed.Name)
	assert.ErrorIs(t, categories.Rename(db, "missing", "x"), repositories.ErrCategoryNotFound)

	require.NoError(t, categories.Delete(db, category.ID))
	assert.Nil(t, helpers.LoadSubscription(t, db, sub.ID).CategoryID)
	_, err = categories.FindByID(db, category.ID)
	assert.ErrorIs(t, err, repositories.ErrCategoryNotFound)
	assert.ErrorIs(t, categories.Delete(db, category.ID), repositories.ErrCategoryNotFound)
}

func TestMembershipRepository_IsMember(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewMembershipRepository()
	helpers.SeedMember(t, db, org, owner)

	ok, err := repo.IsMember(db, org, owner)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.IsMember(db, org, other)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTagRepository_FindByIDsSkipsUnknown(t *testing.T) {
	db := helpers.NewTestDB(t)
	tags := helpers.SeedTags(t, db, owner, "", "one", "two")

	found, err := repositories.NewTagRepository().FindByIDs(db, append(tags, "missing"))
	require.NoError(t, err)
	assert.Len(t, found, 2)

	none, err := repositories.NewTagRepository().FindByIDs(db, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}
