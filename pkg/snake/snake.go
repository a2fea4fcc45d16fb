// Package snake prompts interactively for command inputs.
package snake

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"tableflip.dev/unsent/pkg/filter"
)

// Prompter asks for filter inputs on a terminal.
type Prompter struct {
	In  io.Reader
	Out io.Writer
}

type categoryItem struct {
	Name  string
	Short string
}

var categoryItems = []categoryItem{
	{Name: string(filter.All), Short: "everything in the archive"},
	{Name: string(filter.Prose), Short: "prose pieces"},
	{Name: string(filter.Poem), Short: "poems"},
}

func (p *Prompter) stdin() io.ReadCloser {
	if p.In == nil {
		return os.Stdin
	}
	return io.NopCloser(p.In)
}

func (p *Prompter) stdout() io.WriteCloser {
	if p.Out == nil {
		return os.Stdout
	}
	return nopCloser{p.Out}
}

// Category asks for a category, starting on current.
func (p *Prompter) Category(current filter.Category) (filter.Category, error) {
	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Name | bold }} {{ .Short | green }}",
		Inactive: "   {{ .Name }} {{ .Short | cyan }}",
		Selected: "{{ .Name | bold }}",
	}

	cursor := 0
	for i, item := range categoryItems {
		if item.Name == string(current) {
			cursor = i
		}
	}

	prompt := promptui.Select{
		HideHelp:  true,
		Label:     "Category",
		Items:     categoryItems,
		Templates: templates,
		CursorPos: cursor,
		Searcher:  categorySearcher,
		Stdin:     p.stdin(),
		Stdout:    p.stdout(),
	}

	i, _, err := prompt.Run()
	if err != nil {
		return current, fmt.Errorf("category prompt: %w", err)
	}
	return filter.Category(categoryItems[i].Name), nil
}

func categorySearcher(input string, index int) bool {
	item := categoryItems[index]
	name := strings.Replace(strings.ToLower(item.Name+item.Short), " ", "", -1)
	input = strings.Replace(strings.ToLower(input), " ", "", -1)

	return strings.Contains(name, input)
}

// Query asks for a free text query. An empty answer clears it.
func (p *Prompter) Query(current string) (string, error) {
	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }} : ",
		Valid:   "{{ . | green }} : ",
		Invalid: "{{ . | red }} : ",
		Success: "{{ . | bold }} : ",
	}

	prompt := promptui.Prompt{
		Label:     "Query",
		Default:   current,
		AllowEdit: true,
		Templates: templates,
		Stdin:     p.stdin(),
		Stdout:    p.stdout(),
	}

	result, err := prompt.Run()
	if err != nil {
		return current, fmt.Errorf("query prompt: %w", err)
	}
	return strings.TrimSpace(result), nil
}

// Filter prompts for both filter inputs.
func (p *Prompter) Filter(st filter.State) (filter.State, error) {
	c, err := p.Category(st.Category)
	if err != nil {
		return st, err
	}
	q, err := p.Query(st.Query)
	if err != nil {
		return st, err
	}
	return filter.State{Category: c, Query: q}, nil
}

// ParseBool is strconv.ParseBool with the addition of Yes/No and On/Off parsing.
func ParseBool(str string) (bool, error) {
	switch str {
	case "1", "t", "T", "true", "TRUE", "True", "y", "Y", "yes", "YES", "Yes", "on", "ON", "On":
		return true, nil
	case "0", "f", "F", "false", "FALSE", "False", "n", "N", "no", "NO", "No", "off", "OFF", "Off":
		return false, nil
	}
	return false, &strconv.NumError{Func: "ParseBool", Num: str, Err: strconv.ErrSyntax}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
