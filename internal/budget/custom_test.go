package budget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twoloonies/loonies/internal/model"
)

func TestAddCustomField(t *testing.T) {
	e := newTestEngine()
	def, err := e.AddCustomField(model.CategoryIncome, "  Bonus  ", "")
	require.NoError(t, err)

	assert.Equal(t, "custom_1", def.Key)
	assert.Equal(t, "Bonus", def.Label)
	assert.Equal(t, model.CategoryIncome, def.Category)
	assert.Equal(t, model.OriginCustom, def.Origin)
	assert.Equal(t, model.PayPeriodMonthly, def.PayPeriod)
	assert.Equal(t, []model.FieldDefinition{def}, e.CustomFields(model.CategoryIncome))

	_, ok := e.Value(def.Key)
	assert.False(t, ok, "no initial amount means unset")
}

func TestAddCustomField_SeedsPositiveAmount(t *testing.T) {
	e := newTestEngine()
	def, err := e.AddCustomField(model.CategoryExpense, "Gym", "45.50")
	require.NoError(t, err)

	v, ok := e.Value(def.Key)
	require.True(t, ok)
	assert.Equal(t, "45.5", v)
	assertDec(t, "45.5", e.TotalExpenses())
}

func TestAddCustomField_ZeroAmountNotSeeded(t *testing.T) {
	e := newTestEngine()
	def, err := e.AddCustomField(model.CategoryExpense, "Gym", "0")
	require.NoError(t, err)

	_, ok := e.Value(def.Key)
	assert.False(t, ok)
}

func TestAddCustomField_Errors(t *testing.T) {
	tests := []struct {
		name    string
		cat     model.Category
		field   string
		amount  string
		wantErr error
	}{
		{"empty name", model.CategoryIncome, "", "", ErrEmptyName},
		{"blank name", model.CategoryIncome, "   ", "10", ErrEmptyName},
		{"blank name beats bad amount", model.CategoryIncome, " ", "abc", ErrEmptyName},
		{"bad amount", model.CategoryIncome, "Bonus", "abc", ErrInvalidAmount},
		{"negative amount", model.CategoryIncome, "Bonus", "-1", ErrInvalidAmount},
		{"whitespace amount", model.CategoryIncome, "Bonus", "  ", ErrInvalidAmount},
		{"bad amount beats duplicate", model.CategoryIncome, "Rental Income", "x", ErrInvalidAmount},
		{"fixed duplicate", model.CategoryIncome, "rental income", "", ErrDuplicateName},
		{"fixed duplicate padded", model.CategoryExpense, "  GROCERIES ", "5", ErrDuplicateName},
		{"unknown category", model.Category("savings"), "Bonus", "", ErrUnknownCategory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine()
			_, err := e.AddCustomField(tt.cat, tt.field, tt.amount)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, e.CustomFields(model.CategoryIncome))
			assert.Empty(t, e.CustomFields(model.CategoryExpense))
		})
	}
}

func TestAddCustomField_DuplicateCustom(t *testing.T) {
	e := newTestEngine()
	_, err := e.AddCustomField(model.CategoryIncome, "Bonus", "")
	require.NoError(t, err)

	_, err = e.AddCustomField(model.CategoryIncome, "BONUS", "")
	assert.ErrorIs(t, err, ErrDuplicateName)

	// The same name in the other category is fine.
	_, err = e.AddCustomField(model.CategoryExpense, "bonus", "")
	assert.NoError(t, err)

	// So is a fixed label from the other category.
	_, err = e.AddCustomField(model.CategoryExpense, "Rental Income", "")
	assert.NoError(t, err)
}

func TestAddCustomField_KeysUniqueAndDisjoint(t *testing.T) {
	e := New(WithKeyGenerator(&stuckGenerator{keys: []string{"groceries", "custom_1", "custom_1", "custom_2"}}))

	a, err := e.AddCustomField(model.CategoryIncome, "A", "")
	require.NoError(t, err)
	b, err := e.AddCustomField(model.CategoryExpense, "B", "")
	require.NoError(t, err)

	assert.Equal(t, "custom_1", a.Key)
	assert.Equal(t, "custom_2", b.Key)
}

func TestAddCustomField_ManyRapidAdds(t *testing.T) {
	e := New()
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		def, err := e.AddCustomField(model.CategoryExpense, "Item "+string(rune('A'+i%26))+string(rune('a'+i/26)), "")
		require.NoError(t, err)
		assert.False(t, seen[def.Key])
		assert.False(t, e.Registry().IsFixed(def.Key))
		seen[def.Key] = true
	}
}

func TestRemoveCustomField_RestoresTotals(t *testing.T) {
	p := &memPersister{}
	e := newTestEngine(WithPersister(p))
	require.NoError(t, e.SetValue("rentalIncome", "500"))
	before := e.TotalIncome()

	def, err := e.AddCustomField(model.CategoryIncome, "Bonus", "100")
	require.NoError(t, err)
	assertDec(t, "600", e.TotalIncome())

	e.RemoveCustomField(model.CategoryIncome, def.Key)

	assert.True(t, before.Equal(e.TotalIncome()))
	assert.Empty(t, e.CustomFields(model.CategoryIncome))
	_, ok := e.Value(def.Key)
	assert.False(t, ok)

	snap := e.Snapshot()
	assert.NotContains(t, snap.Values, def.Key)
	require.NotNil(t, p.saved)
	assert.NotContains(t, p.saved.Values, def.Key)
	assert.Empty(t, p.saved.Custom[model.CategoryIncome])
}

func TestRemoveCustomField_NoOp(t *testing.T) {
	e := newTestEngine()
	def, err := e.AddCustomField(model.CategoryIncome, "Bonus", "100")
	require.NoError(t, err)

	e.RemoveCustomField(model.CategoryIncome, "custom_404")
	// Wrong category leaves the field alone.
	e.RemoveCustomField(model.CategoryExpense, def.Key)

	assert.Len(t, e.CustomFields(model.CategoryIncome), 1)
	assertDec(t, "100", e.TotalIncome())
}

func TestRemoveCustomField_KeepsOrder(t *testing.T) {
	e := newTestEngine()
	a, _ := e.AddCustomField(model.CategoryExpense, "A", "")
	b, _ := e.AddCustomField(model.CategoryExpense, "B", "")
	c, _ := e.AddCustomField(model.CategoryExpense, "C", "")

	e.RemoveCustomField(model.CategoryExpense, b.Key)

	assert.Equal(t, []model.FieldDefinition{a, c}, e.CustomFields(model.CategoryExpense))
}

// stuckGenerator replays a fixed list of keys.
type stuckGenerator struct {
	keys []string
	i    int
}

func (g *stuckGenerator) Next() string {
	k := g.keys[g.i%len(g.keys)]
	g.i++
	return k
}
