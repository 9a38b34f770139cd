package session

import (
	"testing"

	"imagetoolbox/internal/nav"
	"imagetoolbox/internal/update"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uriPtr(s string) *URI {
	u := URI(s)
	return &u
}

func TestSetSingleImageOnMainOpensDialog(t *testing.T) {
	s := New()
	s.SetSingleImage(uriPtr("/tmp/cat.png"))

	require.NotNil(t, s.Selection.Single)
	assert.Equal(t, URI("/tmp/cat.png"), *s.Selection.Single)
	assert.True(t, s.Flags.ShowSelectDialog)
}

func TestSetSingleImageNilNeverOpensDialog(t *testing.T) {
	s := New()
	s.SetSingleImage(nil)

	assert.Nil(t, s.Selection.Single)
	assert.False(t, s.Flags.ShowSelectDialog)
}

func TestSetSingleImageOffMainReplacesWithoutDialog(t *testing.T) {
	s := New()
	s.OpenScreen(nav.Crop)
	s.SetSingleImage(uriPtr("a.jpg"))

	require.NotNil(t, s.Selection.Single)
	assert.False(t, s.Flags.ShowSelectDialog)
}

func TestSetSingleImageCopiesReference(t *testing.T) {
	s := New()
	ref := uriPtr("a.jpg")
	s.SetSingleImage(ref)
	*ref = "b.jpg"
	assert.Equal(t, URI("a.jpg"), *s.Selection.Single)
}

func TestHideSelectDialog(t *testing.T) {
	s := New()
	s.SetSingleImage(uriPtr("a.jpg"))
	s.HideSelectDialog()
	assert.False(t, s.Flags.ShowSelectDialog)
	assert.NotNil(t, s.Selection.Single, "hiding the dialog keeps the selection")
}

func TestSetMultiImageFromMainNavigatesToBatch(t *testing.T) {
	s := New()
	refs := []URI{"b.png", "a.png", "b.png"}
	s.SetMultiImage(refs)

	assert.Equal(t, []nav.Screen{nav.Main, nav.BatchResize}, s.BackStack())
	assert.Equal(t, refs, s.Selection.Multi, "order and duplicates preserved")
}

func TestSetMultiImageFromDeepScreenResetsToMain(t *testing.T) {
	s := New()
	s.OpenScreen(nav.SingleResize)
	s.OpenScreen(nav.Crop)
	s.SetMultiImage([]URI{"a.png"})

	assert.Equal(t, []nav.Screen{nav.Main, nav.BatchResize}, s.BackStack())
}

func TestSetMultiImageOnBatchKeepsStack(t *testing.T) {
	s := New()
	s.SetMultiImage([]URI{"a.png"})
	before := s.BackStack()

	s.SetMultiImage([]URI{"c.png", "d.png"})

	assert.Equal(t, before, s.BackStack())
	assert.Equal(t, []URI{"c.png", "d.png"}, s.Selection.Multi)
}

func TestSetMultiImageNilDoesNotNavigate(t *testing.T) {
	s := New()
	s.SetMultiImage(nil)
	assert.Equal(t, []nav.Screen{nav.Main}, s.BackStack())
	assert.Nil(t, s.Selection.Multi)
}

func TestSetMultiImageEmptyListCountsAsPresent(t *testing.T) {
	s := New()
	s.SetMultiImage([]URI{})
	assert.Equal(t, nav.BatchResize, s.Screen())
	assert.NotNil(t, s.Selection.Multi)
}

func TestSetMultiImageCopiesSlice(t *testing.T) {
	s := New()
	refs := []URI{"a.png"}
	s.SetMultiImage(refs)
	refs[0] = "z.png"
	assert.Equal(t, URI("a.png"), s.Selection.Multi[0])
}

func TestApplyUpdateRaisesDialogOnce(t *testing.T) {
	s := New()
	raised := s.ApplyUpdate(&update.UpdateInfo{LatestTag: "2.7.0", UpdateAvailable: true})

	assert.True(t, raised)
	assert.True(t, s.Flags.ShowUpdateDialog)
	assert.Equal(t, "2.7.0", s.Tag)
}

func TestApplyUpdateSameVersionKeepsDialogHidden(t *testing.T) {
	s := New()
	raised := s.ApplyUpdate(&update.UpdateInfo{LatestTag: "2.6.0", UpdateAvailable: false})

	assert.False(t, raised)
	assert.False(t, s.Flags.ShowUpdateDialog)
	assert.Equal(t, "2.6.0", s.Tag)
}

func TestCancelUpdateSuppressesLaterResults(t *testing.T) {
	s := New()
	s.ApplyUpdate(&update.UpdateInfo{LatestTag: "2.7.0", UpdateAvailable: true})
	s.CancelUpdate()

	assert.False(t, s.Flags.ShowUpdateDialog)
	assert.False(t, s.CanCheckForUpdate())

	for i := 0; i < 3; i++ {
		assert.False(t, s.ApplyUpdate(&update.UpdateInfo{LatestTag: "2.8.0", UpdateAvailable: true}))
	}
	assert.False(t, s.Flags.ShowUpdateDialog)
}

func TestApplyUpdateNil(t *testing.T) {
	s := New()
	assert.False(t, s.ApplyUpdate(nil))
}

func TestBackNeverPopsMain(t *testing.T) {
	s := New()
	assert.False(t, s.Back())
	s.OpenScreen(nav.Filter)
	assert.True(t, s.Back())
	assert.Equal(t, nav.Main, s.Screen())
}

func TestParseURIs(t *testing.T) {
	assert.Nil(t, ParseURIs("  \n , "))
	assert.Equal(t, []URI{"a.png"}, ParseURIs(" a.png "))
	assert.Equal(t,
		[]URI{"/x/a b.png", "c.jpg", "/x/a b.png"},
		ParseURIs("/x/a b.png, c.jpg\n/x/a b.png"),
	)
}
