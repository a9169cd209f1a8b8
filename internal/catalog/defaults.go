package catalog

import (
	"github.com/listenupapp/audiobook-mcp/internal/domain"
	"github.com/listenupapp/audiobook-mcp/internal/id"
)

// hm converts hours and minutes to seconds.
func hm(hours, minutes int) int {
	return hours*3600 + minutes*60
}

// referenceRecords is the built-in library, in catalog order.
var referenceRecords = []Record{
	{
		Title: "1984", Author: "George Orwell", Genre: "Dystopian Fiction", Narrator: "Simon Prebble",
		Duration: hm(11, 30), Chapters: 23, Year: 1949,
		Description: "A dystopian social science fiction novel about totalitarian control.",
		URL:         "mock://1984-audiobook.mp3",
	},
	{
		Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", Genre: "Fiction", Narrator: "Jake Gyllenhaal",
		Duration: hm(4, 49), Chapters: 9, Year: 1925,
		Description: "A story of the fabulously wealthy Jay Gatsby and his love for Daisy Buchanan.",
		URL:         "mock://great-gatsby-audiobook.mp3",
	},
	{
		Title: "To Kill a Mockingbird", Author: "Harper Lee", Genre: "Fiction", Narrator: "Sissy Spacek",
		Duration: hm(12, 17), Chapters: 31, Year: 1960,
		Description: "A story of racial injustice and childhood innocence.",
		URL:         "mock://to-kill-mockingbird-audiobook.mp3",
	},
	{
		Title: "Dune", Author: "Frank Herbert", Genre: "Science Fiction", Narrator: "Scott Brick",
		Duration: hm(21, 2), Chapters: 48, Year: 1965,
		Description: "An epic science fiction novel set on the desert planet Arrakis.",
		URL:         "mock://dune-audiobook.mp3",
	},
	{
		Title: "The Martian", Author: "Andy Weir", Genre: "Science Fiction", Narrator: "R.C. Bray",
		Duration: hm(10, 53), Chapters: 26, Year: 2011,
		Description: "A story of an astronaut stranded on Mars.",
		URL:         "mock://martian-audiobook.mp3",
	},
	{
		Title: "Becoming", Author: "Michelle Obama", Genre: "Biography", Narrator: "Michelle Obama",
		Duration: hm(19, 3), Chapters: 24, Year: 2018,
		Description: "A memoir by former First Lady Michelle Obama.",
		URL:         "mock://becoming-audiobook.mp3",
	},
	{
		Title: "Sapiens", Author: "Yuval Noah Harari", Genre: "Non-fiction", Narrator: "Derek Perkins",
		Duration: hm(15, 17), Chapters: 20, Year: 2011,
		Description: "A brief history of humankind, from the Stone Age to the twenty-first century.",
		URL:         "mock://sapiens-audiobook.mp3",
	},
	{
		Title: "The Silent Patient", Author: "Alex Michaelides", Genre: "Mystery", Narrator: "Jack Hawkins",
		Duration: hm(8, 43), Chapters: 46, Year: 2019,
		Description: "A psychological thriller about a painter who shoots her husband and never speaks again.",
		URL:         "mock://silent-patient-audiobook.mp3",
	},
	{
		Title: "Educated", Author: "Tara Westover", Genre: "Biography", Narrator: "Julia Whelan",
		Duration: hm(12, 10), Chapters: 40, Year: 2018,
		Description: "A memoir of a woman raised by survivalists in Idaho who goes on to earn a PhD.",
		URL:         "mock://educated-audiobook.mp3",
	},
	{
		Title: "Atomic Habits", Author: "James Clear", Genre: "Self-help", Narrator: "James Clear",
		Duration: hm(5, 35), Chapters: 20, Year: 2018,
		Description: "A practical guide to building good habits and breaking bad ones.",
		URL:         "mock://atomic-habits-audiobook.mp3",
	},
}

// Reference returns the built-in library in catalog order.
func Reference() []domain.Book {
	books := make([]domain.Book, len(referenceRecords))
	for i, r := range referenceRecords {
		r.ID = id.Book(r.Title, r.Author)
		books[i] = r.Book()
	}
	return books
}
