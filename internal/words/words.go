// Package words holds the built-in secret word pools, one per category.
package words

import "math/rand"

// Pools maps category names to their word lists. Category matching is
// exact; anything unknown falls back to the generic pool so a room with a
// custom category can still start a round.
var Pools = map[string][]string{
	"Footballers": {
		"Messi", "Cristiano Ronaldo", "Mbappe", "Haaland", "Neymar",
		"Maradona", "Pele", "Zidane", "Ronaldinho", "Modric",
		"Lewandowski", "Suarez", "Iniesta", "Xavi", "Beckham",
	},
	"Football Clubs": {
		"Real Madrid", "Barcelona", "Manchester United", "Liverpool",
		"Bayern Munich", "Juventus", "PSG", "Boca Juniors", "River Plate",
		"Chelsea", "Arsenal", "Inter Milan", "AC Milan", "Ajax",
	},
	"Singers": {
		"Shakira", "Bad Bunny", "Taylor Swift", "Adele", "Drake",
		"Rihanna", "Ed Sheeran", "Beyonce", "Bruno Mars", "Dua Lipa",
		"The Weeknd", "Karol G", "Rosalia", "Billie Eilish",
	},
	"Celebrities": {
		"Leonardo DiCaprio", "Brad Pitt", "Angelina Jolie", "Will Smith",
		"Dwayne Johnson", "Tom Cruise", "Jennifer Lawrence", "Keanu Reeves",
		"Scarlett Johansson", "Johnny Depp", "Emma Watson", "Ryan Reynolds",
	},
	"Movies": {
		"Titanic", "Avatar", "The Godfather", "Star Wars", "Jurassic Park",
		"The Lion King", "Harry Potter", "The Matrix", "Forrest Gump",
		"Gladiator", "Inception", "Toy Story", "Shrek", "Rocky",
	},
	"Animals": {
		"Elephant", "Giraffe", "Penguin", "Dolphin", "Kangaroo",
		"Tiger", "Eagle", "Octopus", "Crocodile", "Flamingo",
		"Panda", "Wolf", "Owl", "Shark", "Turtle",
	},
	"Countries": {
		"Argentina", "Brazil", "Japan", "France", "Egypt",
		"Australia", "Canada", "Italy", "Mexico", "India",
		"Germany", "Spain", "Norway", "Morocco", "Thailand",
	},
	"Car Brands": {
		"Ferrari", "Toyota", "Ford", "BMW", "Mercedes",
		"Lamborghini", "Porsche", "Tesla", "Honda", "Audi",
		"Fiat", "Renault", "Volkswagen", "Peugeot",
	},
	"Food": {
		"Pizza", "Sushi", "Hamburger", "Paella", "Tacos",
		"Empanada", "Lasagna", "Croissant", "Ice Cream", "Asado",
		"Hot Dog", "Ramen", "Pancakes", "Ceviche",
	},
	"Household Objects": {
		"Fridge", "Microwave", "Broom", "Pillow", "Mirror",
		"Lamp", "Scissors", "Toaster", "Blender", "Umbrella",
		"Clock", "Ladder", "Bucket", "Iron",
	},
}

var fallback = []string{
	"Beach", "Mountain", "Library", "Circus", "Airport",
	"Hospital", "School", "Casino", "Submarine", "Desert",
}

// Categories returns the known category names, for clients that want to
// offer a picker. Order is unspecified.
func Categories() []string {
	out := make([]string, 0, len(Pools))
	for k := range Pools {
		out = append(out, k)
	}
	return out
}

// Pick draws a uniformly random word from the category's pool, or from the
// fallback pool when the category is unknown or empty.
func Pick(category string) string {
	pool, ok := Pools[category]
	if !ok || len(pool) == 0 {
		pool = fallback
	}
	return pool[rand.Intn(len(pool))]
}
