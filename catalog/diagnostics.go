package catalog

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// DiagnosticKind classifies a dropped or degraded record.
type DiagnosticKind int

const (
	IngredientUnresolved DiagnosticKind = iota + 1
	ProductUnresolved
	AmountInvalid
	RecipeWithoutProducts
	RecipeDuplicate
	DurationInvalid
)

func (k DiagnosticKind) String() string {
	switch k {
	case IngredientUnresolved:
		return "ingredient_unresolved"
	case ProductUnresolved:
		return "product_unresolved"
	case AmountInvalid:
		return "amount_invalid"
	case RecipeWithoutProducts:
		return "recipe_without_products"
	case RecipeDuplicate:
		return "recipe_duplicate"
	case DurationInvalid:
		return "duration_invalid"
	}
	return fmt.Sprintf("DiagnosticKind(%d)", int(k))
}

// Diagnostic is one human-readable warning about a skipped ingredient, product or recipe.
type Diagnostic struct {
	Kind       DiagnosticKind
	Recipe     string // recipe ClassName, empty for standalone ingredient extraction
	RecipeName string
	Reference  string // the unresolved identifier, amount or duration text
	Suggestion string // closest catalog ClassName, if any
}

func (d Diagnostic) recipeContext() string {
	if d.Recipe == "" {
		return ""
	}
	return fmt.Sprintf(" for recipe %s (ClassName: %s)", d.RecipeName, d.Recipe)
}

// String renders the diagnostic for operators.
func (d Diagnostic) String() string {
	var msg string
	switch d.Kind {
	case IngredientUnresolved:
		msg = fmt.Sprintf("Ingredient item with partial ClassName ending in '%s_C'%s not found in item catalog. Skipping this ingredient.", d.Reference, d.recipeContext())
	case ProductUnresolved:
		msg = fmt.Sprintf("Product item %s%s not found in item catalog. Skipping this product.", d.Reference, d.recipeContext())
	case AmountInvalid:
		msg = fmt.Sprintf("Amount %s%s is not a valid count. Skipping this entry.", d.Reference, d.recipeContext())
	case RecipeWithoutProducts:
		msg = fmt.Sprintf("Could not resolve any products%s. Skipping this recipe.", d.recipeContext())
	case RecipeDuplicate:
		msg = fmt.Sprintf("Duplicate recipe%s. Keeping the first definition.", d.recipeContext())
	case DurationInvalid:
		msg = fmt.Sprintf("Manufacturing duration %q%s is not a number.", d.Reference, d.recipeContext())
	default:
		msg = fmt.Sprintf("%s: %s%s", d.Kind, d.Reference, d.recipeContext())
	}
	if d.Suggestion != "" {
		msg += fmt.Sprintf(" Did you mean %s?", d.Suggestion)
	}
	return msg
}

// Sink receives diagnostics. Implementations must be safe for the caller's
// goroutine; the builders in this package only report from one goroutine.
type Sink interface {
	Report(Diagnostic)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Diagnostic)

func (f SinkFunc) Report(d Diagnostic) { f(d) }

// Discard drops every diagnostic.
var Discard Sink = SinkFunc(func(Diagnostic) {})

// Collector keeps diagnostics in memory, in report order.
type Collector struct {
	mu    sync.Mutex
	diags []Diagnostic
}

func (c *Collector) Report(d Diagnostic) {
	c.mu.Lock()
	c.diags = append(c.diags, d)
	c.mu.Unlock()
}

// Diagnostics returns a copy of everything reported so far.
func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Diagnostic, len(c.diags))
	copy(out, c.diags)
	return out
}

// Count returns how many diagnostics of the given kind were reported.
func (c *Collector) Count(kind DiagnosticKind) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, d := range c.diags {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

// LogSink writes diagnostics to a zap logger at warn level.
type LogSink struct {
	Log *zap.Logger
}

// NewLogSink returns a LogSink; a nil logger discards output.
func NewLogSink(log *zap.Logger) LogSink {
	if log == nil {
		log = zap.NewNop()
	}
	return LogSink{Log: log}
}

func (s LogSink) Report(d Diagnostic) {
	fields := []zap.Field{zap.Stringer("kind", d.Kind)}
	if d.Recipe != "" {
		fields = append(fields, zap.String("recipe", d.Recipe))
	}
	if d.Reference != "" {
		fields = append(fields, zap.String("reference", d.Reference))
	}
	if d.Suggestion != "" {
		fields = append(fields, zap.String("suggestion", d.Suggestion))
	}
	s.Log.Warn(d.String(), fields...)
}
