package model

import (
	"errors"
	"time"

	apperrors "media-uploader/backend/common/errors"

	"gorm.io/gorm"
)

// Media is a catalog record for an object held by the remote store. PublicID
// is the remote store's identifier and is required to destroy the object, so
// a row must only be deleted after its remote object is gone.
type Media struct {
	Id          int64     `json:"id" gorm:"primaryKey"`
	Filename    string    `json:"filename" gorm:"size:300;not null"`
	URL         string    `json:"url" gorm:"size:500;not null"`
	PublicID    string    `json:"public_id" gorm:"column:public_id;size:500;not null"`
	IsVisible   bool      `json:"is_visible" gorm:"default:true"`
	UploadedBy  string    `json:"uploaded_by" gorm:"size:150"`
	Description string    `json:"description" gorm:"size:500"`
	Size        int64     `json:"size"`
	Mimetype    string    `json:"mimetype" gorm:"size:50"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"-"`
}

// GetVisibleMedia lists the public gallery, newest first.
func GetVisibleMedia() ([]*Media, error) {
	var medias []*Media
	err := DB.Where("is_visible = ?", true).Order("id desc").Find(&medias).Error
	return medias, err
}

// GetAllMedia lists every row regardless of visibility, newest first.
func GetAllMedia() ([]*Media, error) {
	var medias []*Media
	err := DB.Order("id desc").Find(&medias).Error
	return medias, err
}

func GetMediaById(id int64) (*Media, error) {
	var media Media
	if err := DB.First(&media, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrMediaNotFound, "media not found")
		}
		return nil, err
	}
	return &media, nil
}

func (media *Media) Insert() error {
	return DB.Create(media).Error
}

func (media *Media) Delete() error {
	return DB.Delete(media).Error
}

// ToggleMediaVisibility flips the visibility flag of one row.
func ToggleMediaVisibility(id int64) error {
	media, err := GetMediaById(id)
	if err != nil {
		return err
	}
	return DB.Model(media).Update("is_visible", !media.IsVisible).Error
}

// BulkToggleVisibility flips every listed row in a single transaction. Ids
// without a row are skipped.
func BulkToggleVisibility(ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return DB.Transaction(func(tx *gorm.DB) error {
		return tx.Model(&Media{}).
			Where("id IN ?", ids).
			Update("is_visible", gorm.Expr("NOT is_visible")).Error
	})
}
