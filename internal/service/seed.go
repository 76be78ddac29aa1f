package service

import (
	"time"

	"rental-movies/internal/data"
)

type seedPost struct {
	slug, title, text, category, author string
	published                           time.Time
}

func seedTime(s string) time.Time {
	t, err := time.Parse(TimestampLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

var seedPosts = []seedPost{
	{"blogpost-1", "New website ready", "We are happy to announce that the new Rental Movies website is ready.\n\nWe hope you find it easier to find the movies you want to watch. New is also a news page with news, offers and other information.\n\nMembers can write their own posts in the news section.\n\nWelcome!\nThe Rental Movies staff", "information", "", seedTime("2016-05-16 12:35:29")},
	{"blogpost-2", "Celebrating our new website", "To celebrate the new website all members get 20% off every movie for two weeks. We will also publish a special offer every day during these two weeks, so keep an eye on the website.\n\nBest regards\nThe Rental Movies staff", "offer", "", seedTime("2016-05-16 13:25:20")},
	{"blogpost-3", "The Jungle Book is finally here", "You can now watch The Jungle Book at Rental Movies.\n\nThe movie is based on the book by Rudyard Kipling about an orphan boy raised in the jungle by wolves, a bear and a black panther.\n\nDon't miss it, it is for movie lovers young and old.\n\nBest regards\nThe Rental Movies staff", "news", "", seedTime("2016-05-17 09:05:19")},
	{"blogpost-4", "Summer offer", "We wish all members a great summer, but we cannot decide the weather. All members therefore get 15% off every movie during July.\n\nSunny summer greetings\nThe Rental Movies staff", "offer", "", seedTime("2016-05-17 11:35:41")},
	{"blogpost-5", "Movie calendar", "The website now has a movie calendar.\n\nEvery month has a movie of the month with 15% off if you watch it during that month.\n\nBest regards\nThe Rental Movies staff", "information", "", seedTime("2016-05-19 10:43:37")},
	{"blogpost-6", "Testing the news blog", "Just testing the news blog where members can post messages. While I am here I can recommend Eye in the Sky, a really exciting movie for those who like drama and thrillers.\n\nThomas", "other", "doe", seedTime("2016-05-20 12:15:22")},
}

// DefaultContent returns the news posts the content table is reset to.
// Posts without an author are attributed to admin.
func DefaultContent(admin string) []*data.Content {
	contents := make([]*data.Content, 0, len(seedPosts))
	for _, p := range seedPosts {
		published := p.published
		author := p.author
		if author == "" {
			author = admin
		}
		contents = append(contents, &data.Content{
			Slug:      p.slug,
			Type:      data.ContentTypePost,
			Title:     p.title,
			Data:      p.text,
			Filter:    "nl2br",
			Author:    author,
			Category:  p.category,
			Published: &published,
			Created:   p.published,
		})
	}
	return contents
}
