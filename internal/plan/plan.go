package plan

import (
	"strings"

	"github.com/mmr-tortoise/drupal-require-core/internal/model"
)

// Build constructs the fixed update plan from the matched entries and the
// optional command prefix.
//
// The four steps, in order:
//
//  1. composer clear-cache && composer install
//  2. composer require <deps> --update-with-all-dependencies
//  3. composer require --dev <dev-deps> --update-with-all-dependencies
//  4. drush updb && drush cr && drush cex -y
//
// The prefix (e.g. "lando" or "docker compose exec app") is split on
// whitespace and prepended to every sub-command as leading argv tokens.
// Quoted prefix tokens with embedded spaces are not supported.
//
// Steps 2 and 3 are built from the template even when their entry list is
// empty; callers abort earlier only when BOTH lists are empty.
func Build(entries, devEntries []model.MatchedEntry, prefix string) *model.UpdatePlan {
	prefixTokens := strings.Fields(prefix)

	requireArgs := append([]string{"composer", "require"}, model.RenderEntries(entries)...)
	requireArgs = append(requireArgs, "--update-with-all-dependencies")

	requireDevArgs := append([]string{"composer", "require", "--dev"}, model.RenderEntries(devEntries)...)
	requireDevArgs = append(requireDevArgs, "--update-with-all-dependencies")

	steps := []model.CommandStep{
		newStep(prefixTokens,
			[]string{"composer", "clear-cache"},
			[]string{"composer", "install"},
		),
		newStep(prefixTokens, requireArgs),
		newStep(prefixTokens, requireDevArgs),
		newStep(prefixTokens,
			[]string{"drush", "updb"},
			[]string{"drush", "cr"},
			[]string{"drush", "cex", "-y"},
		),
	}

	return &model.UpdatePlan{Steps: steps}
}

// newStep assembles one plan step: each sub-command gets the prefix tokens
// prepended, and the display string joins the prefixed sub-commands with
// " && " to mirror how the operator would type the step into a shell.
func newStep(prefixTokens []string, subCommands ...[]string) model.CommandStep {
	commands := make([][]string, 0, len(subCommands))
	displays := make([]string, 0, len(subCommands))

	for _, sub := range subCommands {
		argv := make([]string, 0, len(prefixTokens)+len(sub))
		argv = append(argv, prefixTokens...)
		argv = append(argv, sub...)

		commands = append(commands, argv)
		displays = append(displays, strings.Join(argv, " "))
	}

	return model.CommandStep{
		Display:  strings.Join(displays, " && "),
		Commands: commands,
	}
}
