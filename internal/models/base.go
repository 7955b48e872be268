package models

import "time"

// Timestamps e SoftDelete são capacidades independentes,
// embutidas por composição em cada entidade persistida.

type Timestamps struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SoftDelete struct {
	IsActive  bool       `gorm:"default:true;index" json:"is_active"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// Remove marca o registro como excluído sem apagar a linha.
func (s *SoftDelete) Remove(now time.Time) {
	s.IsActive = false
	s.DeletedAt = &now
}

// Restore desfaz a exclusão lógica.
func (s *SoftDelete) Restore() {
	s.IsActive = true
	s.DeletedAt = nil
}
