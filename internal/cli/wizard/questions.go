package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nazmul-nhb/nhb-express/internal/catalog"
	"github.com/nazmul-nhb/nhb-express/internal/core/project"
)

// Question IDs.
const (
	QuestionProjectName    = "project_name"
	QuestionDatabase       = "database"
	QuestionPackageManager = "package_manager"
)

// errNameRequired is shown inline while the project name is blank.
var errNameRequired = errors.New("Project name is required!")

// ValidateProjectName applies the generator's name rule to the trimmed
// input, so a bad name is rejected at the prompt instead of failing later.
func ValidateProjectName(s string) error {
	name := strings.TrimSpace(s)
	if name == "" {
		return errNameRequired
	}
	return project.ValidateName(name)
}

// DefaultQuestions builds the three generator questions from the catalog.
// defaults preselects the database and package manager.
func DefaultQuestions(cat *catalog.Catalog, defaults WizardResult) []Question {
	return []Question{
		{
			ID:          QuestionProjectName,
			Type:        QuestionTypeInput,
			Title:       "📂 Project Name:",
			Placeholder: "e.g. my-server",
			Validate:    ValidateProjectName,
		},
		databaseQuestion(cat, defaults.Database),
		packageManagerQuestion(cat, defaults.PackageManager),
	}
}

func databaseQuestion(cat *catalog.Catalog, def string) Question {
	q := Question{
		ID:      QuestionDatabase,
		Type:    QuestionTypeSelect,
		Title:   "📁 Select Database + ODM/ORM:",
		Default: def,
	}
	for _, db := range cat.Available() {
		q.Options = append(q.Options, Option{Label: db.Label, Value: db.ID, Hint: db.Hint})
	}
	if soon := cat.ComingSoon(); len(soon) > 0 {
		labels := make([]string, len(soon))
		for i, db := range soon {
			labels[i] = db.Label
		}
		q.Description = fmt.Sprintf("Coming soon: %s", strings.Join(labels, ", "))
	}
	return q
}

func packageManagerQuestion(cat *catalog.Catalog, def string) Question {
	q := Question{
		ID:      QuestionPackageManager,
		Type:    QuestionTypeSelect,
		Title:   "📦 Choose a Package Manager:",
		Default: def,
	}
	for _, pm := range cat.PackageManagers {
		label := pm.Label
		if label == "" {
			label = pm.ID
		}
		q.Options = append(q.Options, Option{Label: label, Value: pm.ID})
	}
	return q
}

// OverwriteTitle is the confirmation shown when the target directory exists.
func OverwriteTitle(name string) string {
	return fmt.Sprintf("⛔ %q already exists. Overwrite?", name)
}
