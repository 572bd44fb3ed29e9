package models

import (
	"time"

	"gorm.io/gorm"
)

// Submission is an immutable result document. The ID comes from the caller
// and is written at most once; the project must have a stored Definition
// before a submission for it is accepted.
type Submission struct {
	ID          string    `gorm:"type:varchar(255);primaryKey" json:"id"`
	ProjectName string    `gorm:"type:varchar(255);not null;index" json:"projectName"`
	Payload     string    `gorm:"type:text;not null"           json:"payload"`
	Checksum    string    `gorm:"type:varchar(64);not null"    json:"checksum"`
	CreatedAt   time.Time `gorm:"autoCreateTime"               json:"createdAt"`
}

func (s *Submission) BeforeSave(tx *gorm.DB) error {
	s.Checksum = PayloadChecksum(s.Payload)
	return nil
}
