package generation

// ExamplePrompts returns sample briefs for trying the generator.
func ExamplePrompts() []string {
	return []string{
		"An artisan coffee roastery in Portland that sources single-origin beans and runs weekend cupping classes",
		"A mindfulness app that offers five-minute guided meditations for busy professionals",
		"A vintage vinyl record shop with rare pressings, listening booths and a monthly crate-digging club",
		"A plant-based meal prep service in Austin delivering fresh weekly menus to offices and homes",
		"An AI fitness coach that builds adaptive workout plans from your wearable data",
		"A boutique glamping retreat with safari tents, hot tubs and guided stargazing in the high desert",
	}
}
