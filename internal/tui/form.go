package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/chefcommunity/client/internal/router"
	"github.com/chefcommunity/client/internal/service"
	"github.com/chefcommunity/client/internal/types"
)

type formField int

const (
	fieldTitle formField = iota
	fieldDescription
	fieldInstructions
	fieldCategory
	fieldDifficulty
	fieldPrepTime
	fieldCalories
	fieldIngredientName
	fieldIngredientQty
	fieldImage
	fieldVideo
)

// formPage creates a recipe, or edits the selected one on the
// update-recipe view.
type formPage struct {
	env  pageEnv
	form *service.RecipeForm

	inputs       map[formField]*textinput.Model
	instructions textarea.Model
	fields       []formField
	focus        int
	category     int
	difficulty   int
	message      string
}

func newFormPage(env pageEnv) *formPage {
	var existing *types.Recipe
	if env.state.View == router.ViewUpdateRecipe {
		existing = env.state.Selected
	}
	p := &formPage{env: env, form: service.NewRecipeForm(env.api, existing)}
	values := p.form.Fields()

	input := func(placeholder, value string) *textinput.Model {
		in := newInput(placeholder)
		in.SetValue(value)
		return &in
	}
	p.inputs = map[formField]*textinput.Model{
		fieldTitle:          input("Título", values.Title),
		fieldDescription:    input("Descripción", values.Description),
		fieldPrepTime:       input("Minutos", numberValue(values.PrepTime)),
		fieldCalories:       input("kcal", numberValue(values.Calories)),
		fieldIngredientName: input("Ingrediente", ""),
		fieldIngredientQty:  input("Cantidad (200 g)", ""),
		fieldImage:          input("Ruta de la imagen principal", ""),
		fieldVideo:          input("Ruta del video", ""),
	}

	p.instructions = textarea.New()
	p.instructions.Placeholder = "Un paso por línea"
	p.instructions.ShowLineNumbers = false
	p.instructions.SetHeight(5)
	p.instructions.Cursor.SetMode(cursor.CursorStatic)
	p.instructions.SetValue(values.Instructions)

	p.category = indexOf(types.Categories, values.Category)
	p.difficulty = indexOf(difficultyLabels(), string(values.Difficulty))

	p.fields = []formField{
		fieldTitle, fieldDescription, fieldInstructions, fieldCategory, fieldDifficulty,
		fieldPrepTime, fieldCalories, fieldIngredientName, fieldIngredientQty,
	}
	if !p.form.IsEdit() {
		p.fields = append(p.fields, fieldImage, fieldVideo)
	}
	p.setFocus(0)
	return p
}

func numberValue(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func difficultyLabels() []string {
	out := make([]string, len(types.Difficulties))
	for i, d := range types.Difficulties {
		out[i] = string(d)
	}
	return out
}

// indexOf returns the position of v, or 0 when absent.
func indexOf(list []string, v string) int {
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return 0
}

func (p *formPage) Init() tea.Cmd { return nil }

func (p *formPage) SetSize(w, h int) {
	if w > 4 {
		p.instructions.SetWidth(w - 4)
	}
}

func (p *formPage) Typing() bool { return true }

func (p *formPage) current() formField { return p.fields[p.focus] }

func (p *formPage) setFocus(i int) {
	n := len(p.fields)
	p.focus = ((i % n) + n) % n
	for f, in := range p.inputs {
		if f == p.current() {
			in.Focus()
		} else {
			in.Blur()
		}
	}
	if p.current() == fieldInstructions {
		p.instructions.Focus()
	} else {
		p.instructions.Blur()
	}
}

func (p *formPage) Update(msg tea.Msg) (page, tea.Cmd) {
	if res, ok := msg.(resultMsg); ok {
		if res.err != nil && p.form.Err() == "" {
			p.message = res.err.Error()
		}
		return p, nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, p.forward(msg)
	}

	p.message = ""
	switch key.String() {
	case "esc":
		p.cancel()
		return p, nil
	case "ctrl+s":
		return p, p.submit()
	case "tab":
		p.setFocus(p.focus + 1)
		return p, nil
	case "shift+tab":
		p.setFocus(p.focus - 1)
		return p, nil
	case "ctrl+d":
		if n := len(p.form.Fields().Ingredients); n > 0 {
			p.form.RemoveIngredient(n - 1)
		}
		return p, nil
	}

	switch p.current() {
	case fieldCategory:
		p.category = cycle(p.category, len(types.Categories), key.String())
		return p, nil
	case fieldDifficulty:
		p.difficulty = cycle(p.difficulty, len(types.Difficulties), key.String())
		return p, nil
	case fieldIngredientName, fieldIngredientQty:
		if key.String() == "enter" {
			name, qty := p.inputs[fieldIngredientName], p.inputs[fieldIngredientQty]
			if p.form.AddIngredient(name.Value(), qty.Value()) {
				name.Reset()
				qty.Reset()
				p.setFocus(indexOfField(p.fields, fieldIngredientName))
			} else {
				p.message = "Indica el ingrediente y su cantidad."
			}
			return p, nil
		}
	case fieldInstructions:
	default:
		if key.String() == "enter" {
			p.setFocus(p.focus + 1)
			return p, nil
		}
	}
	return p, p.forward(msg)
}

func indexOfField(fields []formField, f formField) int {
	for i, v := range fields {
		if v == f {
			return i
		}
	}
	return 0
}

func cycle(i, n int, key string) int {
	switch key {
	case "left", "h":
		return (i + n - 1) % n
	case "right", "l", " ":
		return (i + 1) % n
	}
	return i
}

func (p *formPage) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if p.current() == fieldInstructions {
		p.instructions, cmd = p.instructions.Update(msg)
		return cmd
	}
	if in, ok := p.inputs[p.current()]; ok {
		*in, cmd = in.Update(msg)
	}
	return cmd
}

func (p *formPage) cancel() {
	var err error
	if p.form.IsEdit() {
		err = p.env.router.CancelEdit()
	} else {
		err = p.env.router.CancelCreate()
	}
	if err != nil {
		p.env.logger.Warn("cancel recipe form failed", zap.Error(err))
	}
}

// collect copies the inputs into the form.
func (p *formPage) collect() error {
	prep, err := optionalInt(p.inputs[fieldPrepTime].Value())
	if err != nil {
		return fmt.Errorf("el tiempo de preparación debe ser un número")
	}
	calories, err := optionalInt(p.inputs[fieldCalories].Value())
	if err != nil {
		return fmt.Errorf("las calorías deben ser un número")
	}
	var image, video *types.Attachment
	if !p.form.IsEdit() {
		if image, err = service.ReadAttachment(p.inputs[fieldImage].Value()); err != nil {
			return err
		}
		if video, err = service.ReadAttachment(p.inputs[fieldVideo].Value()); err != nil {
			return err
		}
	}
	p.form.Update(func(f *service.RecipeFields) {
		f.Title = p.inputs[fieldTitle].Value()
		f.Description = p.inputs[fieldDescription].Value()
		f.Instructions = p.instructions.Value()
		f.Category = types.Categories[p.category]
		f.Difficulty = types.Difficulties[p.difficulty]
		f.PrepTime = prep
		f.Calories = calories
		f.MainImage = image
		f.Video = video
	})
	return nil
}

func optionalInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func (p *formPage) submit() tea.Cmd {
	if p.form.Submitting() {
		return nil
	}
	if err := p.collect(); err != nil {
		p.message = err.Error()
		return nil
	}
	token := p.env.state.Token()
	r := p.env.router
	edit := p.form.IsEdit()
	return p.env.run(func(ctx context.Context) error {
		saved, err := p.form.Submit(ctx, token)
		if err != nil {
			return err
		}
		if edit {
			return r.FinishEdit(saved)
		}
		return r.FinishCreate()
	})
}

func (p *formPage) View() string {
	s := p.env.styles
	values := p.form.Fields()

	label := func(f formField, text string) string {
		if f == p.current() {
			return s.Selected.Render(text)
		}
		return s.Bold.Render(text)
	}
	choice := func(options []string, active int) string {
		out := make([]string, len(options))
		for i, o := range options {
			if i == active {
				out[i] = s.ActiveTab.Render(o)
			} else {
				out[i] = s.Tab.Render(o)
			}
		}
		return strings.Join(out, " ")
	}

	var b strings.Builder
	if p.form.IsEdit() {
		b.WriteString(s.Title.Render("EDITAR RECETA"))
	} else {
		b.WriteString(s.Title.Render("NUEVA RECETA"))
	}
	b.WriteString("\n\n")
	b.WriteString(label(fieldTitle, "Título") + "\n" + p.inputs[fieldTitle].View() + "\n")
	b.WriteString(label(fieldDescription, "Descripción") + "\n" + p.inputs[fieldDescription].View() + "\n")
	b.WriteString(label(fieldInstructions, "Instrucciones") + "\n" + p.instructions.View() + "\n")
	b.WriteString(label(fieldCategory, "Categoría") + " " + choice(types.Categories, p.category) + "\n")
	b.WriteString(label(fieldDifficulty, "Dificultad") + " " + choice(difficultyLabels(), p.difficulty) + "\n")
	b.WriteString(label(fieldPrepTime, "Tiempo (min)") + " " + p.inputs[fieldPrepTime].View() + "\n")
	b.WriteString(label(fieldCalories, "Calorías") + " " + p.inputs[fieldCalories].View() + "\n")

	b.WriteString("\n" + s.Header.Render("Ingredientes") + "\n")
	b.WriteString(s.IngredientList(values.Ingredients) + "\n")
	b.WriteString(label(fieldIngredientName, "+") + " " + p.inputs[fieldIngredientName].View() + " " + p.inputs[fieldIngredientQty].View() + "\n")

	if !p.form.IsEdit() {
		b.WriteString("\n" + label(fieldImage, "Imagen") + " " + p.inputs[fieldImage].View() + "\n")
		b.WriteString(label(fieldVideo, "Video") + " " + p.inputs[fieldVideo].View() + "\n")
	}

	switch {
	case p.form.Submitting():
		b.WriteString("\n" + s.Muted.Render("Guardando..."))
	case p.message != "":
		b.WriteString("\n" + s.Error.Render(p.message))
	case p.form.Err() != "":
		b.WriteString("\n" + s.Error.Render(p.form.Err()))
	}
	b.WriteString("\n\n")
	b.WriteString(s.Muted.Render("tab campo · ←/→ elegir · enter añadir ingrediente · ctrl+d quitar último · ctrl+s guardar · esc cancelar"))
	return b.String()
}
