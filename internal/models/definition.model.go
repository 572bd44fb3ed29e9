package models

import (
	"encoding/hex"
	"time"

	"golang.org/x/crypto/blake2b"
	"gorm.io/gorm"
)

// Definition is a project's test template. There is at most one row per
// project name; a new upload for the same name replaces the payload.
type Definition struct {
	ProjectName string    `gorm:"type:varchar(255);primaryKey" json:"projectName"`
	Payload     string    `gorm:"type:text;not null"           json:"payload"`
	Checksum    string    `gorm:"type:varchar(64);not null"    json:"checksum"`
	CreatedAt   time.Time `gorm:"autoCreateTime"               json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"               json:"updatedAt"`
}

func (d *Definition) BeforeSave(tx *gorm.DB) error {
	d.Checksum = PayloadChecksum(d.Payload)
	return nil
}

// PayloadChecksum returns the blake2b-256 digest of the stored document,
// hex encoded.
func PayloadChecksum(payload string) string {
	sum := blake2b.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}
