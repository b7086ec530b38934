package repository

import "errors"

var (
	// ErrNoSkipsLeft означает, что у команды не осталось скипов:
	// условный UPDATE не затронул ни одной строки.
	ErrNoSkipsLeft = errors.New("team has no skips left")
	// ErrNoOpenEntry означает, что для пары (команда, загадка) нет открытой записи леджера.
	ErrNoOpenEntry = errors.New("no open time maintenance entry")
)
