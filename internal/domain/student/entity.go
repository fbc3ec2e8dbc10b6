// Package student содержит доменную модель студента.
// Это ядро бизнес-логики - здесь нет внешних зависимостей.
package student

import (
	"fmt"
)

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: STUDENT
// ══════════════════════════════════════════════════════════════════════════════

// Student - запись о студенте: фамилия, имя и год рождения.
// После создания значение не меняется: поля скрыты, сеттеров нет.
type Student struct {
	// name - фамилия (Nom).
	name string

	// firstName - имя (Prenom).
	firstName string

	// birthYear - год рождения (AnneeNais).
	birthYear int
}

// NewStudent создаёт студента из трёх значений.
// Валидации нет: пустые строки и неположительные годы допустимы.
func NewStudent(name, firstName string, birthYear int) *Student {
	return &Student{
		name:      name,
		firstName: firstName,
		birthYear: birthYear,
	}
}

// Name возвращает фамилию.
func (s *Student) Name() string {
	return s.name
}

// FirstName возвращает имя.
func (s *Student) FirstName() string {
	return s.firstName
}

// BirthYear возвращает год рождения.
func (s *Student) BirthYear() int {
	return s.birthYear
}

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN METHODS
// ══════════════════════════════════════════════════════════════════════════════

// Age возвращает currentYear - birthYear.
// Диапазон не проверяется: результат может быть отрицательным.
func (s *Student) Age(currentYear int) int {
	return currentYear - s.birthYear
}

// String возвращает каноническое текстовое представление в порядке
// фамилия, имя, год рождения. Только для вывода, не для разбора.
func (s *Student) String() string {
	return fmt.Sprintf("Etudiant [Nom=%s, Prenom=%s, AnneeNais=%d]", s.name, s.firstName, s.birthYear)
}

// Equal сравнивает две записи поле за полем.
func (s *Student) Equal(other *Student) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.name == other.name &&
		s.firstName == other.firstName &&
		s.birthYear == other.birthYear
}
