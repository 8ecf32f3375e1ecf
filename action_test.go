package scout_test

import (
	"slices"
	"testing"

	"github.com/sw965/omw/slicesx"
	"github.com/sw965/scout"
)

func countActions(actions []scout.Action) (scouts, shows, scoutShows int) {
	for _, action := range actions {
		switch action.(type) {
		case scout.Scout:
			scouts++
		case scout.Show:
			shows++
		case scout.ScoutShow:
			scoutShows++
		}
	}
	return scouts, shows, scoutShows
}

func TestLegalActionsOneCardHand(t *testing.T) {
	setMap := scout.NewSetMap()

	tests := []struct {
		name      string
		hand      []int
		wantShows int
	}{
		{
			// 手札[7]は場の[4]より強いので、ショーが1つだけ成立する
			name:      "正常_手札が場より強い",
			hand:      []int{7},
			wantShows: 1,
		},
		{
			// 手札[1]は場の[4]より弱いので、ショーは成立しない
			name:      "正常_手札が場より弱い",
			hand:      []int{1},
			wantShows: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Helper()
			view := scout.GameView{
				Hand:        tc.hand,
				Active:      scout.Set{{Up: 4, Down: 9}},
				ActiveOwner: 1,
				Players: []scout.PublicPlayer{
					{Score: 0, HandSize: 1, CanScoutShow: false},
					{Score: 0, HandSize: 3, CanScoutShow: true},
					{Score: 0, HandSize: 3, CanScoutShow: true},
				},
			}

			actions := scout.LegalActions(view, setMap)
			scouts, shows, scoutShows := countActions(actions)

			// 2方向 × 反転有無 × 挿入位置(0..1) = 8
			if scouts != 8 {
				t.Errorf("wantScouts: 8, got: %d", scouts)
			}
			if shows != tc.wantShows {
				t.Errorf("wantShows: %d, got: %d", tc.wantShows, shows)
			}
			if scoutShows != 0 {
				t.Errorf("使用権なしではスカウト&ショーは列挙されないべき, got: %d", scoutShows)
			}

			if !slicesx.IsUnique(actions) {
				t.Errorf("列挙された合法手に重複がある: %v", actions)
			}
		})
	}
}

func TestLegalActionsEmptyActive(t *testing.T) {
	setMap := scout.NewSetMap()
	view := scout.GameView{
		Hand:        []int{0, 1, 0},
		Active:      scout.Set{},
		ActiveOwner: 0,
		Players: []scout.PublicPlayer{
			{Score: 0, HandSize: 3, CanScoutShow: true},
			{Score: 0, HandSize: 3, CanScoutShow: true},
			{Score: 0, HandSize: 3, CanScoutShow: true},
		},
	}

	actions := scout.LegalActions(view, setMap)
	scouts, shows, scoutShows := countActions(actions)

	// 場が空ならスカウトもスカウト&ショーも不可
	if scouts != 0 || scoutShows != 0 {
		t.Errorf("wantScouts: 0, wantScoutShows: 0, got: %d, %d", scouts, scoutShows)
	}

	// ランク0の場に対しては、セットを成す全ての部分列がショー可能:
	// [0], [1], [0], [0,1], [1,0]
	if shows != 5 {
		t.Errorf("wantShows: 5, got: %d", shows)
	}
}

func TestLegalActionsScoutShowCrossProduct(t *testing.T) {
	setMap := scout.NewSetMap()
	view := scout.GameView{
		Hand:        []int{7},
		Active:      scout.Set{{Up: 4, Down: 9}},
		ActiveOwner: 1,
		Players: []scout.PublicPlayer{
			{Score: 0, HandSize: 1, CanScoutShow: true},
			{Score: 0, HandSize: 3, CanScoutShow: true},
			{Score: 0, HandSize: 3, CanScoutShow: true},
		},
	}

	actions := scout.LegalActions(view, setMap)
	scouts, shows, scoutShows := countActions(actions)

	if scouts != 8 {
		t.Errorf("wantScouts: 8, got: %d", scouts)
	}
	if shows != 1 {
		t.Errorf("wantShows: 1, got: %d", shows)
	}

	// スカウト後の場は空になるので、2枚の手札の全シングルがショー可能。
	// 4,9はどちらも7と連続も同値もしないので2枚セットは成立しない。
	// 8スカウト × 2ショー = 16
	if scoutShows != 16 {
		t.Errorf("wantScoutShows: 16, got: %d", scoutShows)
	}

	if !slicesx.IsUnique(actions) {
		t.Errorf("列挙された合法手に重複がある")
	}
}

func TestLegalActionsShowMustOutrank(t *testing.T) {
	setMap := scout.NewSetMap()

	// 場は[5,6](ストレート2)。それより強い部分列だけがショー可能
	view := scout.GameView{
		Hand:        []int{4, 4, 3},
		Active:      scout.Set{{Up: 5, Down: 0}, {Up: 6, Down: 1}},
		ActiveOwner: 2,
		Players: []scout.PublicPlayer{
			{Score: 0, HandSize: 3, CanScoutShow: false},
			{Score: 0, HandSize: 3, CanScoutShow: true},
			{Score: 0, HandSize: 3, CanScoutShow: true},
		},
	}

	actions := scout.LegalActions(view, setMap)
	// [4,4]はフラッシュ2なので同サイズのストレート2より強い。
	// [4,3]は基底3の降順ストレート2なので、基底5の場より弱い。
	wantShows := []scout.Show{
		{Start: 0, Stop: 1},
	}

	gotShows := []scout.Show{}
	for _, action := range actions {
		if show, ok := action.(scout.Show); ok {
			gotShows = append(gotShows, show)
		}
	}
	if !slices.Equal(gotShows, wantShows) {
		t.Errorf("wantShows: %v, got: %v", wantShows, gotShows)
	}
}

func TestLegalActionsDoesNotMutateView(t *testing.T) {
	setMap := scout.NewSetMap()
	view := scout.ViewOf(newTestState())

	wantHand := slices.Clone(view.Hand)
	wantActive := view.Active.Clone()
	wantPlayers := slices.Clone(view.Players)

	scout.LegalActions(view, setMap)

	if !slices.Equal(view.Hand, wantHand) {
		t.Errorf("手札が変更された: %v", view.Hand)
	}
	if !slices.Equal(view.Active, wantActive) {
		t.Errorf("場が変更された: %v", view.Active)
	}
	if !slices.Equal(view.Players, wantPlayers) {
		t.Errorf("公開情報が変更された: %v", view.Players)
	}
}
