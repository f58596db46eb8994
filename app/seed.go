package app

import (
	"context"

	"github.com/mkrivushin/libcat/book"
	"github.com/mkrivushin/libcat/logger"
)

// sampleBooks is the starter catalog loaded by the seed command
var sampleBooks = []book.Book{
	{Title: "Pride and Prejudice", Author: "Jane Austen", Genre: "Classic", Year: "1813"},
	{Title: "Jane Eyre", Author: "Charlotte Brontë", Genre: "Classic", Year: "1847"},
	{Title: "Wuthering Heights", Author: "Emily Brontë", Genre: "Classic", Year: "1847"},
	{Title: "Crime and Punishment", Author: "Fyodor Dostoevsky", Genre: "Classic", Year: "1866"},
	{Title: "The Adventures of Huckleberry Finn", Author: "Mark Twain", Genre: "Classic", Year: "1884"},
	{Title: "The Time Machine", Author: "H. G. Wells", Genre: "Science Fiction", Year: "1895"},
	{Title: "A Brief History of Time", Author: "Stephen Hawking", Genre: "Non Fiction", Year: "1988"},
	{Title: "Frankenstein", Author: "Mary Shelley", Genre: "Horror", Year: "1818"},
	{Title: "The Martian", Author: "Andy Weir", Genre: "Science Fiction", Year: "2014"},
	{Title: "Ready Player One", Author: "Ernest Cline", Genre: "Science Fiction", Year: "2011"},
	{Title: "Armada", Author: "Ernest Cline", Genre: "Science Fiction", Year: "2015"},
	{Title: "Emma", Author: "Jane Austen", Genre: "Classic", Year: "1815"},
}

// seed loads the sample catalog into an empty database. A non-empty
// catalog is left untouched.
func (app *appEnv) seed() error {
	ctx := context.Background()

	total, err := app.storage.CountBooks(ctx, nil)
	if err != nil {
		return err
	}
	if total > 0 {
		logger.Info("Catalog already has books, skipping seed", "count", total)
		return nil
	}

	for i := range sampleBooks {
		b := sampleBooks[i]
		if err := app.storage.CreateBook(ctx, &b); err != nil {
			return err
		}
	}

	logger.Info("Seeded catalog", "count", len(sampleBooks))
	return nil
}
