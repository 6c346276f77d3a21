package inmemdb

import (
	"github.com/cumaze/registro-consorcio/core/branding"
)

type assetRepository struct {
	db *assetTable
}

func NewAssetRepository(db *DB) branding.ImageRepository {
	return &assetRepository{db: db.asset}
}

var _ branding.ImageRepository = (*assetRepository)(nil)

func (repo *assetRepository) GetImage(role branding.Role) (branding.Image, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	img, ok := repo.db.t[role]
	if !ok {
		return branding.Image{}, branding.ErrNoImage
	}
	img.Data = append([]byte(nil), img.Data...)
	return img, nil
}

// PutImage replaces the current image of img.Role.
func (repo *assetRepository) PutImage(img branding.Image) error {
	img.Data = append([]byte(nil), img.Data...)
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.t[img.Role] = img
	return nil
}

func (repo *assetRepository) DeleteImage(role branding.Role) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	delete(repo.db.t, role)
	return nil
}

func (repo *assetRepository) DeleteAllImages() error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.t = make(map[branding.Role]branding.Image)
	return nil
}
