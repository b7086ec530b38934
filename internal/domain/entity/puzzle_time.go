package entity

import "time"

// PuzzleTimeMaintenance — запись тайминг-леджера: когда загадка была показана
// команде и когда решена. Открытая запись (без PuzzleEndTime) для пары
// (команда, загадка) существует максимум одна; закрытие записи финализирует ее.
// Именно по этим записям считаются очки.
type PuzzleTimeMaintenance struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	PuzzleID uint `gorm:"not null;index:idx_ptm_puzzle_team" json:"puzzle_id"`
	TeamID   uint `gorm:"not null;index:idx_ptm_puzzle_team" json:"team_id"`

	PuzzleStartTime *time.Time `json:"puzzle_start_time,omitempty"`
	PuzzleEndTime   *time.Time `json:"puzzle_end_time,omitempty"`
}

// TableName определяет имя таблицы для GORM
func (PuzzleTimeMaintenance) TableName() string {
	return "puzzle_time_maintenance"
}

// IsOpen сообщает, что загадка показана, но еще не решена
func (m *PuzzleTimeMaintenance) IsOpen() bool {
	return m.PuzzleStartTime != nil && m.PuzzleEndTime == nil
}

// Elapsed возвращает время от показа до решения; валидно только для закрытой записи
func (m *PuzzleTimeMaintenance) Elapsed() time.Duration {
	if m.PuzzleStartTime == nil || m.PuzzleEndTime == nil {
		return 0
	}
	return m.PuzzleEndTime.Sub(*m.PuzzleStartTime)
}
