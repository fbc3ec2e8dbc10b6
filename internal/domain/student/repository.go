package student

import (
	"context"
)

// ══════════════════════════════════════════════════════════════════════════════
// STORE INTERFACE
// Контракт хранения одной записи в именованном месте.
// Реализации находятся в infrastructure/persistence.
// ══════════════════════════════════════════════════════════════════════════════

// DefaultLocation - имя хранилища по умолчанию.
const DefaultLocation = "base.bin"

// Store сохраняет и загружает ровно одну запись по имени location.
type Store interface {
	// Save сериализует запись и полностью заменяет содержимое location.
	// Возвращает ошибку вида shared.ErrIO, если location недоступен для записи.
	Save(ctx context.Context, location string, s *Student) error

	// Load читает location и восстанавливает запись.
	// Возвращает shared.ErrIO, если location недоступен (для отсутствующего
	// также shared.ErrNotFound), и shared.ErrFormat, если байты не являются
	// корректно закодированной записью.
	Load(ctx context.Context, location string) (*Student, error)
}

// Remover - необязательная возможность хранилища удалить запись.
// Удаление отсутствующего location не считается ошибкой.
type Remover interface {
	Delete(ctx context.Context, location string) error
}

// HealthChecker - необязательная проверка доступности хранилища.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
