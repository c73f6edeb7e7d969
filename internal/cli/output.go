package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"catalogctl/internal/domain"
)

const ruleWidth = 80

func printRule(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("-", ruleWidth))
}

func optionalID(id *int64) string {
	if id == nil {
		return "-"
	}
	return strconv.FormatInt(*id, 10)
}

func printUsers(w io.Writer, users []*domain.User) {
	if len(users) == 0 {
		fmt.Fprintln(w, "No users found.")
		return
	}

	fmt.Fprintln(w, "\nUsers:")
	printRule(w)
	for _, u := range users {
		fmt.Fprintf(w, "ID: %d | Username: %s | Email: %s | Active: %t\n", u.ID, u.Username, u.Email, u.IsActive)
	}
}

func printCategories(w io.Writer, categories []*domain.Category) {
	if len(categories) == 0 {
		fmt.Fprintln(w, "No categories found.")
		return
	}

	fmt.Fprintln(w, "\nCategories:")
	printRule(w)
	for _, c := range categories {
		fmt.Fprintf(w, "ID: %d | Title: %s | Parent: %s | Order: %d | Active: %t | Visible: %t\n",
			c.ID, c.Title, optionalID(c.ParentID), c.Order, c.IsActive, c.Visible)
	}
}

func printBrands(w io.Writer, brands []*domain.Brand) {
	if len(brands) == 0 {
		fmt.Fprintln(w, "No brands found.")
		return
	}

	fmt.Fprintln(w, "\nBrands:")
	printRule(w)
	for _, b := range brands {
		fmt.Fprintf(w, "ID: %d | Slug: %s | Name1: %s | Name2: %s | Category: %s\n",
			b.ID, b.Slug, b.Name1, b.Name2, optionalID(b.CategoryID))
	}
}
