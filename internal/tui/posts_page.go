package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/recordops/recordadmin/internal/core/domain"
)

// postsPage holds the view state for the posts list. filterUserID is the
// query-derived filter key: when non-zero, only that user's posts are shown.
// CRUD operations never touch it; clearing it is a single keypress.
type postsPage struct {
	cursor       int
	loading      bool
	filterUserID int
	confirmID    int
	form         *formModel
	quickEdit    *quickEditModel
}

func (p *postsPage) clampCursor(n int) {
	if p.cursor >= n {
		p.cursor = n - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

// visiblePosts derives the filtered view from the snapshot. Pure: the
// standing predicate is "owner matches the filter key when one is set,
// otherwise match all".
func (m App) visiblePosts() []domain.Post {
	key := m.postsPage.filterUserID
	return m.posts.FilterBy(func(p domain.Post) bool {
		return key == domain.NoOwner || p.UserID == key
	})
}

// ownerLabel names a post's owner, falling back to the raw id when the
// referenced user is not in the loaded user list.
func (m App) ownerLabel(userID int) string {
	if u, ok := m.users.Find(userID); ok {
		return u.Name
	}
	return fmt.Sprintf("user #%d", userID)
}

func (m App) viewPosts() string {
	p := m.postsPage

	if p.form != nil {
		return p.form.View()
	}
	if p.quickEdit != nil {
		return p.quickEdit.View()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Posts"))
	if p.filterUserID != domain.NoOwner {
		b.WriteString("  ")
		b.WriteString(filterStyle.Render(fmt.Sprintf("filter: %s (c to clear)", m.ownerLabel(p.filterUserID))))
	}
	b.WriteString("\n\n")

	if err := m.posts.LoadError(); err != nil {
		b.WriteString(bannerStyle.Render("failed to load posts, press r to retry"))
		b.WriteString("\n\n")
		if !m.posts.Loaded() {
			b.WriteString(m.footer("r retry · esc home · q quit"))
			return b.String()
		}
	}

	if p.loading && !m.posts.Loaded() {
		b.WriteString(m.spinner.View() + " loading posts...\n")
		return b.String()
	}

	posts := m.visiblePosts()
	if len(posts) == 0 {
		b.WriteString(dimStyle.Render("no posts here, press n to add one"))
		b.WriteString("\n")
	}
	for i, post := range posts {
		line := fmt.Sprintf("#%-3d %-48s %s", post.ID, truncate(post.Title, 48), dimStyle.Render(m.ownerLabel(post.UserID)))
		if i == p.cursor {
			line = selectedStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	if p.confirmID != 0 {
		b.WriteString("\n")
		b.WriteString(bannerStyle.Render(fmt.Sprintf("delete post #%d? y/n", p.confirmID)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.footer("↑/↓ move · n new · e edit · t quick edit · d delete · c clear filter · r reload · esc home · q quit"))
	return b.String()
}

// selectedPost returns the post under the cursor within the filtered view.
func (m App) selectedPost() (domain.Post, bool) {
	posts := m.visiblePosts()
	if len(posts) == 0 || m.postsPage.cursor >= len(posts) {
		return domain.Post{}, false
	}
	return posts[m.postsPage.cursor], true
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-1]) + "…"
}
