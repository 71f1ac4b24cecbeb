package service

import (
	"github.com/shopspring/decimal"

	"github.com/peacockstore/peacock-api/internal/model"
)

// Built-in catalog served when the database is unreachable. Browsing
// stays functional against this set; every write is rejected.

func sampleProduct(id int64, name string, category model.Category, description, seed string, buy, rent int64) model.Product {
	return model.Product{
		ID:          id,
		Name:        name,
		Category:    category,
		Description: description,
		ImageURLs:   []string{"https://picsum.photos/seed/" + seed + "/400/500"},
		BuyPrice:    decimal.NewFromInt(buy),
		RentPrice:   decimal.NewFromInt(rent),
	}
}

func SampleProducts() []model.Product {
	return []model.Product{
		sampleProduct(1, "Royal Blue Lehenga", model.CategoryWomen, "A stunning lehenga with intricate gold embroidery.", "lehenga", 450, 90),
		sampleProduct(2, "Emerald Green Sherwani", model.CategoryMen, "Elegant silk sherwani for weddings and special occasions.", "sherwani", 500, 100),
		sampleProduct(3, "Ruby Red Saree", model.CategoryWomen, "Classic Banarasi silk saree with a modern twist.", "saree", 350, 75),
		sampleProduct(4, "Golden Jhumkas", model.CategoryJwellery, "Traditional temple jewellery-style earrings.", "jhumkas", 80, 20),
		sampleProduct(5, "Boys Kurta Pajama Set", model.CategoryKidsBoys, "Comfortable and stylish cotton kurta set for boys.", "kurta", 120, 30),
		sampleProduct(6, "Girls Anarkali Dress", model.CategoryKidsGirls, "Flowy and vibrant anarkali for young girls.", "anarkali", 150, 40),
		sampleProduct(7, "Embroidered Potli Bag", model.CategoryHandbags, "A beautiful potli bag to complete your traditional look.", "potli", 60, 15),
		sampleProduct(8, "Classic Nehru Jacket", model.CategoryMen, "A versatile jacket that can be paired with any kurta.", "nehru", 180, 45),
		sampleProduct(9, "Silver Diya Set", model.CategoryPoojaItems, "Exquisite silver-plated diyas for your pooja room.", "diya", 150, 35),
		sampleProduct(10, "Embroidered Mojaris", model.CategoryShoes, "Handcrafted traditional mojaris with intricate threadwork.", "mojari", 95, 25),
		sampleProduct(11, "Kundan Necklace Set", model.CategoryJwellery, "A stunning Kundan necklace with matching earrings.", "kundan", 220, 55),
		sampleProduct(12, "Peacock Wall Art", model.CategoryHomeDecor, "Vibrant metal wall art to adorn your living space.", "wallart", 130, 40),
	}
}

func SampleReviews() []model.Review {
	return []model.Review{
		{ID: 1, ProductID: 1, Author: "Priya S.", Location: "New York, USA", Text: "The lehenga was absolutely breathtaking! I received so many compliments. The rental process was seamless.", Rating: 5},
		{ID: 2, ProductID: 2, Author: "Aarav M.", Location: "London, UK", Text: "Peacock has an amazing collection. The sherwani I bought was of premium quality. Highly recommend!", Rating: 5},
		{ID: 3, ProductID: 3, Author: "Sunita K.", Location: "Toronto, CA", Text: "I rented a saree for a family function and it was perfect. The customer service is top-notch.", Rating: 4},
		{ID: 4, ProductID: 1, Author: "Rohan P.", Location: "Sydney, AU", Text: "Finally, a place for high-quality Indian wear abroad. My go-to for every occasion.", Rating: 5},
	}
}
