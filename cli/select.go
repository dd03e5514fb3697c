package cli

import (
	"sort"
	"strings"

	"github.com/manifoldco/promptui"
)

// SelectOne asks the user to pick one of the choices, presented sorted and
// searchable by prefix. Returns the chosen value.
func SelectOne(label string, choices ...string) (string, error) {
	if len(choices) == 0 {
		return "", promptui.ErrAbort
	}

	names := make([]string, len(choices))
	copy(names, choices)
	sort.Strings(names)

	sel := &promptui.Select{
		Label: label,
		Items: names,
		Searcher: func(input string, index int) bool {
			if len(input) == 0 {
				return false
			}

			return strings.HasPrefix(names[index], input)
		},
	}

	_, value, err := sel.Run()
	if err != nil {
		return "", err
	}

	return value, nil
}
