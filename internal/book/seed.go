package book

// SeedData returns the default catalog used when the store starts empty.
func SeedData() []Input {
	return []Input{
		{
			Title:  "A Arte da Guerra",
			Author: "Sun Tzu",
			Price:  15.00,
			Image:  "./img/arte-da-guerra.jpg",
		},
		{
			Title:  "Como Fazer Amigos e Influenciar Pessoas",
			Author: "Dale Carnegie",
			Price:  30.00,
			Image:  "./img/como-fazer-amigos.jpg",
		},
		{
			Title:  "Diário de um Banana",
			Author: "Jeff Kinney",
			Price:  10.00,
			Image:  "./img/diario-de-um-banana.jpg",
		},
		{
			Title:  "Moby Dick, ou A Baleia",
			Author: "Herman Melville",
			Price:  15.00,
			Image:  "./img/moby-dick.jpg",
		},
		{
			Title:  "Harry Potter e a Pedra Filosofal",
			Author: "J.K. Rowling",
			Price:  25.00,
			Image:  "./img/harry-potter-pedra.jpg",
		},
	}
}
