package tui

import "github.com/jask/catalog/internal/content"

type itemsMsg struct {
	tab   int
	items []content.Item
	err   error
}
