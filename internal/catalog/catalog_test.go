package catalog

import (
	"testing"
	"time"

	"edufleex-go/internal/apperr"
	"edufleex-go/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func video(id int64, ref, title, subject, grade string, featured bool) model.Video {
	return model.Video{
		ID:         id,
		VideoID:    ref,
		Title:      title,
		Subject:    subject,
		Grade:      grade,
		IsFeatured: featured,
		Thumbnail:  "https://img.example.com/" + ref + ".jpg",
	}
}

func sampleVideos() []model.Video {
	return []model.Video{
		video(1, "a", "Algebra Basics", "Mathematics", "Grade 8", true),
		video(2, "b", "Introduction to Physics", "Science", "Grade 10", false),
		video(3, "c", "Chemical Reactions", "Science", "Grade 11", true),
		video(4, "d", "The Human Heart", "Biology", "Grade 9", false),
		video(5, "e", "Pythagorean Theorem", "Mathematics", "Grade 9", false),
	}
}

func ids(videos []model.Video) []int64 {
	out := make([]int64, 0, len(videos))
	for _, v := range videos {
		out = append(out, v.ID)
	}
	return out
}

func TestGroupByIsComplete(t *testing.T) {
	videos := sampleVideos()

	for name, key := range map[string]KeyFunc{"subject": BySubject, "grade": ByGrade} {
		t.Run(name, func(t *testing.T) {
			groups := GroupBy(videos, key, SortedKeys())

			seen := map[int64]int{}
			for _, g := range groups {
				for _, v := range g.Videos {
					assert.Equal(t, g.Key, key(v))
					seen[v.ID]++
				}
			}
			require.Len(t, seen, len(videos))
			for id, n := range seen {
				assert.Equal(t, 1, n, "video %d appears in %d groups", id, n)
			}
		})
	}
}

func TestGroupByPreservesOrderWithinGroup(t *testing.T) {
	groups := GroupBy(sampleVideos(), BySubject, SortedKeys())

	assert.Equal(t, []string{"Biology", "Mathematics", "Science"}, Keys(groups))
	assert.Equal(t, []int64{1, 5}, ids(groups[1].Videos))
	assert.Equal(t, []int64{2, 3}, ids(groups[2].Videos))
}

func TestGroupByOrderPolicies(t *testing.T) {
	videos := sampleVideos()

	first := GroupBy(videos, BySubject, FirstSeen())
	assert.Equal(t, []string{"Mathematics", "Science", "Biology"}, Keys(first))

	explicit := GroupBy(videos, BySubject, ExplicitOrder("Science", "History"))
	assert.Equal(t, []string{"Science", "Biology", "Mathematics"}, Keys(explicit))

	defaulted := GroupBy(videos, BySubject, nil)
	assert.Equal(t, []string{"Biology", "Mathematics", "Science"}, Keys(defaulted))
}

func TestGroupByKeepsKeysDroppedByPolicy(t *testing.T) {
	dropAll := KeyOrder(func([]string) []string { return nil })

	groups := GroupBy(sampleVideos(), BySubject, dropAll)

	assert.Len(t, groups, 3)
}

func TestGroupByEmpty(t *testing.T) {
	groups := GroupBy(nil, BySubject, SortedKeys())

	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}

func TestTruncate(t *testing.T) {
	groups := GroupBy(sampleVideos(), BySubject, SortedKeys())

	capped := Truncate(groups, 1)

	for _, g := range capped {
		assert.LessOrEqual(t, len(g.Videos), 1)
	}
	assert.Len(t, groups[1].Videos, 2, "original groups must not be modified")
}

func TestPickFeaturedPrefersTitleWithinFeatured(t *testing.T) {
	videos := []model.Video{
		video(1, "a", "Chemical Reactions", "Science", "Grade 11", true),
		video(2, "b", "Algebra II", "Mathematics", "Grade 10", false),
		video(3, "c", "Algebra Basics", "Mathematics", "Grade 8", true),
	}

	got, ok := PickFeatured(videos, "Algebra")

	require.True(t, ok)
	assert.Equal(t, int64(3), got.ID, "non-featured title matches must be ignored")
}

func TestPickFeaturedIsCaseSensitive(t *testing.T) {
	videos := []model.Video{
		video(1, "a", "Chemical Reactions", "Science", "Grade 11", true),
		video(2, "b", "algebra basics", "Mathematics", "Grade 8", true),
	}

	got, ok := PickFeatured(videos, "Algebra")

	require.True(t, ok)
	assert.Equal(t, int64(1), got.ID)
}

func TestPickFeaturedFallsBackToFirstFeatured(t *testing.T) {
	videos := sampleVideos()

	got, ok := PickFeatured(videos[1:], "")

	require.True(t, ok)
	assert.Equal(t, int64(3), got.ID)
}

func TestPickFeaturedFallsBackToFirstVideo(t *testing.T) {
	videos := []model.Video{
		video(1, "A", "A", "Science", "Grade 8", false),
		video(2, "B", "B", "Science", "Grade 8", false),
		video(3, "C", "C", "Science", "Grade 8", false),
	}

	got, ok := PickFeatured(videos, "Algebra")

	require.True(t, ok)
	assert.Equal(t, "A", got.VideoID)
}

func TestPickFeaturedEmpty(t *testing.T) {
	_, ok := PickFeatured(nil, "Algebra")

	assert.False(t, ok)
}

func TestFeaturedSubset(t *testing.T) {
	assert.Equal(t, []int64{1, 3}, ids(Featured(sampleVideos(), 0)))
	assert.Equal(t, []int64{1}, ids(Featured(sampleVideos(), 1)))
	assert.Empty(t, Featured(nil, 10))
}

func TestRelatedByExcludesReference(t *testing.T) {
	videos := sampleVideos()

	for _, ref := range videos {
		for _, key := range []KeyFunc{BySubject, ByGrade} {
			related := RelatedBy(videos, ref, key, 10)
			for _, v := range related {
				assert.NotEqual(t, ref.ID, v.ID)
				assert.Equal(t, key(ref), key(v))
			}
		}
	}
}

func TestRelatedByMatchesOnStableIdentifier(t *testing.T) {
	videos := sampleVideos()
	// 来自另一次查询的引用：只有外部 ID 相同
	ref := model.Video{VideoID: "b", Subject: "Science"}

	related := RelatedBy(videos, ref, BySubject, 10)

	assert.Equal(t, []int64{3}, ids(related))
}

func TestRelatedByLimit(t *testing.T) {
	videos := []model.Video{
		video(1, "a", "1", "Science", "Grade 8", false),
		video(2, "b", "2", "Science", "Grade 8", false),
		video(3, "c", "3", "Science", "Grade 8", false),
		video(4, "d", "4", "Science", "Grade 8", false),
	}

	assert.Equal(t, []int64{2, 3}, ids(RelatedBy(videos, videos[0], BySubject, 2)))
	assert.Empty(t, RelatedBy(videos, videos[0], BySubject, 0))
	assert.Empty(t, RelatedBy(nil, videos[0], BySubject, 5))
}

func TestParseSort(t *testing.T) {
	s, err := ParseSort("")
	require.NoError(t, err)
	assert.Equal(t, SortRecency, s)

	s, err = ParseSort("popularity")
	require.NoError(t, err)
	assert.Equal(t, SortPopularity, s)

	_, err = ParseSort("rating")
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
}

func TestFilterValidate(t *testing.T) {
	assert.NoError(t, Filter{}.Validate())
	assert.NoError(t, Filter{}.WithSubject("Mathematics").WithGrade("Grade 8").Excluding(3).Validate())

	assert.ErrorIs(t, Filter{}.WithSubject("").Validate(), apperr.ErrInvalidArgument)
	assert.ErrorIs(t, Filter{}.WithGrade("").Validate(), apperr.ErrInvalidArgument)
	assert.ErrorIs(t, Filter{}.Excluding(0).Validate(), apperr.ErrInvalidArgument)

	assert.NoError(t, ValidateLimit(nil))
	assert.NoError(t, ValidateLimit(Limit(1)))
	assert.ErrorIs(t, ValidateLimit(Limit(0)), apperr.ErrInvalidArgument)
}

func TestParseDuration(t *testing.T) {
	d, ok := ParseDuration("10:30")
	require.True(t, ok)
	assert.Equal(t, 10*time.Minute+30*time.Second, d)

	d, ok = ParseDuration("1:02:03")
	require.True(t, ok)
	assert.Equal(t, time.Hour+2*time.Minute+3*time.Second, d)

	for _, bad := range []string{"", "10", "a:b", "1:2:3:4", "-1:00"} {
		_, ok := ParseDuration(bad)
		assert.False(t, ok, bad)
	}
}

func TestTotalDurationAndFacets(t *testing.T) {
	videos := sampleVideos()
	videos[0].Duration = "10:30"
	videos[1].Duration = "12:45"
	videos[2].Duration = "bogus"

	assert.Equal(t, 23*time.Minute+15*time.Second, TotalDuration(videos))

	facets := Facets(videos, BySubject)
	require.Len(t, facets, 3)
	assert.Equal(t, Facet{Name: "Mathematics", Count: 2, Thumbnail: videos[0].Thumbnail}, facets[1])
	assert.Empty(t, Facets(nil, ByGrade))
}
