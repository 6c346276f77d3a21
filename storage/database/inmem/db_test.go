package inmemdb

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cumaze/registro-consorcio/core/academic"
	"github.com/cumaze/registro-consorcio/core/branding"
)

func TestRosterRepository(t *testing.T) {
	repo := NewRosterRepository(Open())

	r, err := repo.LoadRoster()
	require.NoError(t, err)
	assert.Empty(t, r.Students)

	r.Students = append(r.Students, academic.Student{StudentID: "A", SpanishGrades: []string{"7"}})
	r.CoursesByStudent["A"] = []academic.Course{{ID: "1", Name: "uno"}}
	require.NoError(t, repo.SaveRoster(r))

	// callers get copies
	r.Students[0].SpanishGrades[0] = "changed"
	r.CoursesByStudent["A"][0].Name = "changed"
	got, err := repo.LoadRoster()
	require.NoError(t, err)
	assert.Equal(t, "7", got.Students[0].SpanishGrades[0])
	assert.Equal(t, "uno", got.CoursesByStudent["A"][0].Name)

	got.CoursesByStudent["A"][0].Name = "again"
	again, _ := repo.LoadRoster()
	assert.Equal(t, "uno", again.CoursesByStudent["A"][0].Name)

	require.NoError(t, repo.ClearRoster())
	got, _ = repo.LoadRoster()
	assert.Empty(t, got.Students)
	assert.Empty(t, got.CoursesByStudent)
}

func TestRosterRepository_specializations(t *testing.T) {
	repo := NewRosterRepository(Open())
	spec := academic.Specialization{Tier: academic.TierMaestria, Pool: []academic.CourseTemplate{{Name: "a"}}}
	require.NoError(t, repo.SaveSpecialization(spec))
	spec.Pool[0].Name = "changed"

	pools, err := repo.Specializations()
	require.NoError(t, err)
	require.Contains(t, pools, academic.TierMaestria)
	assert.Equal(t, "a", pools[academic.TierMaestria].Pool[0].Name)

	require.NoError(t, repo.SaveSpecialization(academic.Specialization{Tier: academic.TierMaestria}))
	pools, _ = repo.Specializations()
	assert.Len(t, pools, 1, "one pool per tier")

	require.NoError(t, repo.ClearSpecializations())
	pools, _ = repo.Specializations()
	assert.Empty(t, pools)
}

func TestRosterRepository_concurrent(t *testing.T) {
	repo := NewRosterRepository(Open())
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			r := academic.NewRoster()
			r.Students = append(r.Students, academic.Student{StudentID: strconv.Itoa(i)})
			_ = repo.SaveRoster(r)
		}(i)
		go func() {
			defer wg.Done()
			_, _ = repo.LoadRoster()
		}()
	}
	wg.Wait()

	r, err := repo.LoadRoster()
	require.NoError(t, err)
	assert.Len(t, r.Students, 1, "every save replaces the whole roster")
}

func TestAssetRepository(t *testing.T) {
	repo := NewAssetRepository(Open())

	_, err := repo.GetImage(branding.RoleLogo)
	assert.ErrorIs(t, err, branding.ErrNoImage)

	data := []byte{1, 2, 3}
	require.NoError(t, repo.PutImage(branding.Image{Role: branding.RoleLogo, ContentType: "image/png", Data: data}))
	require.NoError(t, repo.PutImage(branding.Image{Role: branding.RoleSecretary, ContentType: "image/jpeg", Data: data}))
	data[0] = 9

	img, err := repo.GetImage(branding.RoleLogo)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, img.Data)
	assert.Equal(t, "image/png", img.ContentType)

	require.NoError(t, repo.DeleteImage(branding.RoleLogo))
	_, err = repo.GetImage(branding.RoleLogo)
	assert.ErrorIs(t, err, branding.ErrNoImage)
	_, err = repo.GetImage(branding.RoleSecretary)
	assert.NoError(t, err)

	require.NoError(t, repo.DeleteAllImages())
	_, err = repo.GetImage(branding.RoleSecretary)
	assert.ErrorIs(t, err, branding.ErrNoImage)
}
