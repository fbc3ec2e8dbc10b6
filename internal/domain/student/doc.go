// Package student содержит доменную модель студента.
//
// Пакет определяет:
//
//   - Сущность Student: фамилия, имя и год рождения, неизменяемая после создания
//   - Интерфейс Store: сохранение и загрузка одной записи по имени хранилища
//
// # Архитектурные принципы
//
//  1. Нулевые внешние зависимости - только стандартная библиотека Go
//  2. Dependency Inversion - Store реализуется в infrastructure/persistence
//
// # Пример использования
//
//	s := NewStudent("Diouf", "Awa", 1998)
//	if err := store.Save(ctx, DefaultLocation, s); err != nil {
//	    return err
//	}
//
//	loaded, err := store.Load(ctx, DefaultLocation)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(loaded, loaded.Age(2024)) // Etudiant [Nom=Diouf, Prenom=Awa, AnneeNais=1998] 26
package student
