package session

import "errors"

var (
	// ErrSessionNotFound возвращается, когда выбор слотов для сессии не найден или истек
	ErrSessionNotFound = errors.New("session.store: session not found")

	// ErrCorruptedSession возвращается, когда сохраненный выбор не удалось восстановить
	ErrCorruptedSession = errors.New("session.store: corrupted session data")

	// ErrStore возвращается при ошибках хранилища
	ErrStore = errors.New("session.store: storage error")
)
