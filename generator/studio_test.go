package generator_test

import (
	"context"
	"errors"
	"testing"

	"ui_mockups/generator"
	"ui_mockups/generator/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type studioDeps struct {
	llm    *mocks.MockLLMClient
	images *mocks.MockImageClient
	vision *mocks.MockVisionClient
	studio *generator.Studio
}

func newStudio(t *testing.T) studioDeps {
	t.Helper()
	d := studioDeps{
		llm:    mocks.NewMockLLMClient(t),
		images: mocks.NewMockImageClient(t),
		vision: mocks.NewMockVisionClient(t),
	}
	agent, err := generator.NewAgent(d.llm, nil)
	require.NoError(t, err)
	d.studio, err = generator.NewStudio(
		agent,
		generator.NewImageGenerator(d.images, nil, false, 0, nil),
		generator.NewAdherenceChecker(d.vision, nil),
		nil,
	)
	require.NoError(t, err)
	return d
}

func TestStudio_PlanGenerateCheck(t *testing.T) {
	d := newStudio(t)
	d.llm.On("Complete", mock.Anything, mock.Anything).Return(loginPlanJSON, nil).Once()
	d.images.On("GenerateImages", mock.Anything, mock.Anything).Return([]string{"QUJD"}, nil).Once()
	d.vision.On("Inspect", mock.Anything, mock.MatchedBy(func(r generator.VisionRequest) bool {
		return r.ImageBase64 == "QUJD"
	})).Return("All present", nil).Once()

	sess := generator.NewSession("s1", "req.txt", "Build a login screen")
	ctx := context.Background()

	plan, err := d.studio.PlanSession(ctx, sess)
	require.NoError(t, err)
	stored, ok := sess.Plan()
	require.True(t, ok)
	assert.Equal(t, plan, stored)

	items, err := d.studio.GenerateSession(ctx, sess, generator.DefaultGenerateOptions())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Login_1.png", items[0].Name)
	assert.Equal(t, items, sess.Mockups())

	report, err := d.studio.CheckMockup(ctx, sess, "Login_1.png")
	require.NoError(t, err)
	assert.Equal(t, "All present", report)
	assert.Equal(t, map[string]string{"Login_1.png": "All present"}, sess.Checks())

	_, err = d.studio.CheckMockup(ctx, sess, "Missing_1.png")
	assert.ErrorIs(t, err, generator.ErrMockupNotFound)
}

func TestStudio_CheckDroppedWhenMockupReplaced(t *testing.T) {
	d := newStudio(t)
	sess := generator.NewSession("s1", "req.txt", "anything")
	sess.ReplaceMockups([]generator.MockupItem{{
		Name:       "Login_1.png",
		DataURL:    generator.ToDataURL("T0xE"),
		ScreenSpec: loginPlan().Screens[0],
	}})

	// A regeneration lands while the vision call is in flight.
	d.vision.On("Inspect", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			sess.ReplaceMockups([]generator.MockupItem{{
				Name:       "Login_1.png",
				DataURL:    generator.ToDataURL("TkVX"),
				ScreenSpec: loginPlan().Screens[0],
			}})
		}).
		Return("All present", nil).Once()

	report, err := d.studio.CheckMockup(context.Background(), sess, "Login_1.png")

	require.NoError(t, err)
	assert.Equal(t, "All present", report)
	assert.Empty(t, sess.Checks())
}

func TestSession_RecordCheckRequiresSameImage(t *testing.T) {
	sess := generator.NewSession("s1", "", "")
	sess.ReplaceMockups([]generator.MockupItem{{Name: "A_1.png", DataURL: "data:image/png;base64,QUJD"}})

	assert.False(t, sess.RecordCheck("A_1.png", "data:image/png;base64,REVG", "stale"))
	assert.False(t, sess.RecordCheck("B_1.png", "data:image/png;base64,QUJD", "unknown"))
	assert.Empty(t, sess.Checks())

	assert.True(t, sess.RecordCheck("A_1.png", "data:image/png;base64,QUJD", "ok"))
	assert.Equal(t, map[string]string{"A_1.png": "ok"}, sess.Checks())
}

func TestStudio_FailedPlanKeepsPrevious(t *testing.T) {
	d := newStudio(t)
	d.llm.On("Complete", mock.Anything, mock.Anything).Return("not json", nil).Once()

	sess := generator.NewSession("s1", "req.txt", "anything")
	previous := loginPlan()
	sess.SetPlan(previous)

	_, err := d.studio.PlanSession(context.Background(), sess)

	var parseErr *generator.PlanParseError
	require.ErrorAs(t, err, &parseErr)
	stored, ok := sess.Plan()
	require.True(t, ok)
	assert.Equal(t, previous, stored)
}

func TestStudio_FailedGenerationKeepsPreviousMockups(t *testing.T) {
	d := newStudio(t)
	d.images.On("GenerateImages", mock.Anything, mock.Anything).Return(nil, errors.New("boom")).Once()

	sess := generator.NewSession("s1", "req.txt", "anything")
	sess.SetPlan(loginPlan())
	old := []generator.MockupItem{{Name: "Old_1.png"}}
	sess.ReplaceMockups(old)

	_, err := d.studio.GenerateSession(context.Background(), sess, generator.DefaultGenerateOptions())

	require.ErrorIs(t, err, generator.ErrGenerationFailed)
	assert.Equal(t, old, sess.Mockups())
}

func TestStudio_GenerateRequiresPlan(t *testing.T) {
	d := newStudio(t)

	_, err := d.studio.GenerateSession(context.Background(), generator.NewSession("s1", "", ""), generator.DefaultGenerateOptions())

	assert.ErrorIs(t, err, generator.ErrNoPlan)
}

func TestStudio_WithoutPlanner(t *testing.T) {
	st, err := generator.NewStudio(nil,
		generator.NewImageGenerator(nil, nil, false, 0, nil),
		generator.NewAdherenceChecker(nil, nil),
		nil)
	require.NoError(t, err)

	assert.False(t, st.CanPlan())
	_, err = st.Plan(context.Background(), "x")
	assert.ErrorIs(t, err, generator.ErrMissingCredential)
}

func TestSession_ApplyPlanEdit(t *testing.T) {
	sess := generator.NewSession("s1", "req.txt", "anything")
	sess.SetPlan(loginPlan())

	assert.False(t, sess.ApplyPlanEdit("{not valid json"))
	stored, _ := sess.Plan()
	assert.Equal(t, loginPlan(), stored)

	// Edits are parsed strictly; wrapped JSON is not salvaged.
	assert.False(t, sess.ApplyPlanEdit("```json\n{\"screens\":[]}\n```"))

	// Valid JSON that is not an object must not wipe the plan.
	for _, raw := range []string{"null", " null ", "[]", `"text"`, "42"} {
		assert.False(t, sess.ApplyPlanEdit(raw), raw)
	}
	stored, _ = sess.Plan()
	assert.Equal(t, loginPlan(), stored)

	assert.True(t, sess.ApplyPlanEdit(`{"screens":[{"name":"Profile"}],"global_style":{}}`))
	stored, _ = sess.Plan()
	require.Len(t, stored.Screens, 1)
	assert.Equal(t, "Profile", stored.Screens[0].Name)
}

func TestSession_MockupsReturnsCopy(t *testing.T) {
	sess := generator.NewSession("s1", "", "")
	sess.ReplaceMockups([]generator.MockupItem{{Name: "A_1.png"}})

	got := sess.Mockups()
	got[0].Name = "changed"

	item, ok := sess.Mockup("A_1.png")
	assert.True(t, ok)
	assert.Equal(t, "A_1.png", item.Name)
}

func TestGenerateOptions_Validate(t *testing.T) {
	assert.NoError(t, generator.DefaultGenerateOptions().Validate())
	assert.NoError(t, generator.GenerateOptions{}.WithDefaults().Validate())

	bad := []generator.GenerateOptions{
		{Platform: "Desktop", NPerScreen: 1, Size: "1024x1024"},
		{Platform: "Web", NPerScreen: 4, Size: "1024x1024"},
		{Platform: "Web", NPerScreen: 1, Size: "512x512"},
	}
	for _, o := range bad {
		assert.ErrorIs(t, o.Validate(), generator.ErrInvalidOptions)
	}
}
