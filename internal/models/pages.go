package models

import "sort"

// PageImageSet maps 1-based page numbers to rasterized image paths.
type PageImageSet map[int]string

// Pages returns the page numbers in ascending order.
func (s PageImageSet) Pages() []int {
	pages := make([]int, 0, len(s))
	for page := range s {
		pages = append(pages, page)
	}
	sort.Ints(pages)
	return pages
}
