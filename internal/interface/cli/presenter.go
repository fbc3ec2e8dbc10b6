package cli

import (
	"fmt"
	"io"

	"github.com/alem-hub/studentbase/internal/domain/student"
)

// Messages shown by the interactive driver.
const (
	promptName      = "Donner le nom : "
	promptFirstName = "Donner le prenom : "
	promptBirthYear = "Donner l'annee naissance : "
	msgSaved        = "Sauvegarde effectuée avec succès !"

	msgReloadMatches = "Relecture conforme à la sauvegarde."
	msgReloadDiffers = "Attention : la relecture diffère de la sauvegarde."
	msgDeleted       = "Enregistrement supprimé."
	msgStoreReady    = "Stockage %s accessible."
)

// printRecord writes the canonical rendering of st.
func printRecord(w io.Writer, st *student.Student) {
	fmt.Fprintln(w, st.String())
}

// printRecordWithAge writes the record followed by its age in year.
func printRecordWithAge(w io.Writer, st *student.Student, year int) {
	printRecord(w, st)
	fmt.Fprintf(w, "Age en %d : %d ans\n", year, st.Age(year))
}
