package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"catalogctl/internal/domain"
)

const (
	// DefaultMaxTreeDepth bounds traversal of corrupted hierarchies
	DefaultMaxTreeDepth = 64

	treeIndent   = "  "
	branchMarker = "└── "
)

var (
	ErrCategoryCycle = errors.New("category hierarchy contains a cycle")
	ErrTreeTooDeep   = errors.New("category hierarchy exceeds maximum depth")
)

// TreeSource is the read side of category storage the traversal needs.
// Children are looked up by parent id on demand.
type TreeSource interface {
	FindByID(ctx context.Context, id int64) (*domain.Category, error)
	ListRoots(ctx context.Context) ([]*domain.Category, error)
	ListChildren(ctx context.Context, parentID int64) ([]*domain.Category, error)
}

// TreeOptions selects and filters the rendered forest
type TreeOptions struct {
	// ParentID renders only that category and its descendants
	ParentID *int64
	// ActiveOnly skips inactive categories together with their subtrees
	ActiveOnly bool
	MaxDepth   int
}

// VisitFunc is called once per category in depth-first pre-order
type VisitFunc func(category *domain.Category, depth int) error

// WalkTree traverses the category forest depth-first. Siblings are visited
// by (order, id) regardless of the order storage returns them in.
func WalkTree(ctx context.Context, src TreeSource, opts TreeOptions, visit VisitFunc) error {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxTreeDepth
	}

	var roots []*domain.Category
	if opts.ParentID != nil {
		root, err := src.FindByID(ctx, *opts.ParentID)
		if err != nil {
			return err
		}
		roots = []*domain.Category{root}
	} else {
		var err error
		roots, err = src.ListRoots(ctx)
		if err != nil {
			return err
		}
		domain.SortSiblings(roots)
	}

	w := &walker{
		src:      src,
		opts:     opts,
		maxDepth: maxDepth,
		visit:    visit,
		visited:  make(map[int64]bool),
	}
	for _, root := range roots {
		if err := w.walk(ctx, root, 0); err != nil {
			return err
		}
	}
	return nil
}

type walker struct {
	src      TreeSource
	opts     TreeOptions
	maxDepth int
	visit    VisitFunc
	visited  map[int64]bool
}

func (w *walker) walk(ctx context.Context, c *domain.Category, depth int) error {
	if w.opts.ActiveOnly && !c.IsActive {
		return nil
	}
	if w.visited[c.ID] {
		return fmt.Errorf("%w: category %d reached twice", ErrCategoryCycle, c.ID)
	}
	if depth > w.maxDepth {
		return fmt.Errorf("%w: %d", ErrTreeTooDeep, w.maxDepth)
	}
	w.visited[c.ID] = true

	if err := w.visit(c, depth); err != nil {
		return err
	}

	children, err := w.src.ListChildren(ctx, c.ID)
	if err != nil {
		return err
	}
	domain.SortSiblings(children)

	for _, child := range children {
		if err := w.walk(ctx, child, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// FormatTreeLine renders one category at the given depth
func FormatTreeLine(c *domain.Category, depth int) string {
	label := fmt.Sprintf("%s (ID: %d)", c.Title, c.ID)
	if depth == 0 {
		return label
	}
	return strings.Repeat(treeIndent, depth) + branchMarker + label
}

// PrintTree writes the forest as indented text and returns how many
// categories were printed
func PrintTree(ctx context.Context, w io.Writer, src TreeSource, opts TreeOptions) (int, error) {
	printed := 0
	err := WalkTree(ctx, src, opts, func(c *domain.Category, depth int) error {
		if _, err := fmt.Fprintln(w, FormatTreeLine(c, depth)); err != nil {
			return err
		}
		printed++
		return nil
	})
	return printed, err
}

// CategoryNode is a category with its nested children
type CategoryNode struct {
	ID       int64           `json:"id"`
	Title    string          `json:"title"`
	Order    int             `json:"order"`
	IsActive bool            `json:"is_active"`
	Visible  bool            `json:"visible"`
	Children []*CategoryNode `json:"children"`
}

// BuildTree collects the traversal into nested nodes
func BuildTree(ctx context.Context, src TreeSource, opts TreeOptions) ([]*CategoryNode, error) {
	roots := []*CategoryNode{}
	var path []*CategoryNode

	err := WalkTree(ctx, src, opts, func(c *domain.Category, depth int) error {
		node := &CategoryNode{
			ID:       c.ID,
			Title:    c.Title,
			Order:    c.Order,
			IsActive: c.IsActive,
			Visible:  c.Visible,
			Children: []*CategoryNode{},
		}

		path = path[:depth]
		if depth == 0 {
			roots = append(roots, node)
		} else {
			parent := path[depth-1]
			parent.Children = append(parent.Children, node)
		}
		path = append(path, node)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return roots, nil
}
