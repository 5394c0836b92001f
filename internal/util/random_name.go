package util

import (
	"fmt"
	"math/rand"
)

var adjectives = []string{
	"Bluffing", "Folding", "Raising", "Shoving", "Limping", "Grinding", "Stoic", "Lucky", "Unlucky", "Patient",
	"Fearless", "Sneaky", "Loose", "Tight", "Wild", "Calm", "Daring", "Crafty", "Bold", "Quiet", "Suited",
	"Offsuit", "Rivered", "Flopped", "Stacked", "Polarized", "Balanced", "Aggressive", "Passive", "Cunning",
}

var animals = []string{
	"Shark", "Fish", "Donkey", "Whale", "Wolf", "Fox", "Owl", "Rock", "Maniac", "Otter", "Badger", "Raven",
	"Viper", "Mongoose", "Walrus", "Heron", "Lynx", "Jackal", "Bison", "Crane", "Stoat", "Marmot", "Osprey",
	"Puffin", "Gecko", "Tapir", "Ibex", "Kestrel", "Magpie", "Wombat",
}

// GetRandomName returns a random display name by combining an adjective with
// an animal. It is safe for concurrent use.
func GetRandomName() string {
	adjective := adjectives[rand.Intn(len(adjectives))]
	animal := animals[rand.Intn(len(animals))]

	return fmt.Sprintf("%s %s", adjective, animal)
}
