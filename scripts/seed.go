package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"

	"github.com/voyago/travel-agency-backend/internal/domain/entities"
	"github.com/voyago/travel-agency-backend/internal/infrastructure/clients/postgres"
	"github.com/voyago/travel-agency-backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	db := goqu.New("postgres", pgClient.DB())
	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				activity_logs,
				reservations,
				destinations,
				users
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	now := time.Now()

	// 1. Seed Users
	users := []entities.User{
		{ID: uuid.New().String(), Email: "admin@voyago.example", Name: "Amina Benali", Role: entities.UserRoleAdmin, Status: entities.UserStatusActive, Phone: "+33 6 12 34 56 78", CreatedAt: now},
		{ID: uuid.New().String(), Email: "agent@voyago.example", Name: "Lucas Martin", Role: entities.UserRoleAgent, Status: entities.UserStatusActive, Phone: "+33 6 98 76 54 32", CreatedAt: now},
		{ID: uuid.New().String(), Email: "sophie@example.com", Name: "Sophie Dubois", Role: entities.UserRoleClient, Status: entities.UserStatusActive, CreatedAt: now},
		{ID: uuid.New().String(), Email: "karim@example.com", Name: "Karim Haddad", Role: entities.UserRoleClient, Status: entities.UserStatusActive, CreatedAt: now},
		{ID: uuid.New().String(), Email: "elena@example.com", Name: "Elena Rossi", Role: entities.UserRoleClient, Status: entities.UserStatusInactive, CreatedAt: now},
	}

	for _, u := range users {
		query, args, err := db.Insert("users").Rows(goqu.Record{
			"id": u.ID, "email": u.Email, "name": u.Name, "role": u.Role,
			"status": u.Status, "phone": u.Phone, "created_at": u.CreatedAt,
		}).ToSQL()
		if err == nil {
			_, err = pgClient.DB().ExecContext(ctx, query, args...)
		}
		if err != nil {
			log.Printf("Failed to create user %s: %v", u.Email, err)
		}
	}

	// 2. Seed Destinations
	destinations := []entities.Destination{
		{ID: uuid.New().String(), Name: "Marrakech", Country: "Maroc", Continent: "Afrique", Type: "Culturelle", BestSeason: "Printemps", AvgRating: 4.7, AnnualVisitors: 3000000, UnescoSite: true, AvgCostUSD: 95, Description: "Médina, souks et jardins au pied de l'Atlas."},
		{ID: uuid.New().String(), Name: "Paris", Country: "France", Continent: "Europe", Type: "Urbaine", BestSeason: "Été", AvgRating: 4.8, AnnualVisitors: 19000000, UnescoSite: true, AvgCostUSD: 210, Description: "Musées, gastronomie et bords de Seine."},
		{ID: uuid.New().String(), Name: "Tokyo", Country: "Japon", Continent: "Asie", Type: "Urbaine", BestSeason: "Automne", AvgRating: 4.9, AnnualVisitors: 15000000, UnescoSite: false, AvgCostUSD: 180, Description: "Temples, quartiers animés et cuisine raffinée."},
		{ID: uuid.New().String(), Name: "Zanzibar", Country: "Tanzanie", Continent: "Afrique", Type: "Balnéaire", BestSeason: "Hiver", AvgRating: 4.6, AnnualVisitors: 500000, UnescoSite: true, AvgCostUSD: 130, Description: "Plages de sable blanc et vieille ville swahilie."},
		{ID: uuid.New().String(), Name: "Reykjavik", Country: "Islande", Continent: "Europe", Type: "Nature", BestSeason: "Été", AvgRating: 4.5, AnnualVisitors: 2000000, UnescoSite: false, AvgCostUSD: 240, Description: "Aurores boréales, geysers et sources chaudes."},
		{ID: uuid.New().String(), Name: "Cusco", Country: "Pérou", Continent: "Amérique du Sud", Type: "Culturelle", BestSeason: "Hiver", AvgRating: 4.7, AnnualVisitors: 1500000, UnescoSite: true, AvgCostUSD: 110, Description: "Capitale inca, porte du Machu Picchu."},
	}

	for _, d := range destinations {
		query, args, err := db.Insert("destinations").Rows(goqu.Record{
			"id": d.ID, "name": d.Name, "country": d.Country, "continent": d.Continent,
			"type": d.Type, "best_season": d.BestSeason, "avg_rating": d.AvgRating,
			"annual_visitors": d.AnnualVisitors, "unesco_site": d.UnescoSite,
			"photo_url": d.PhotoURL, "avg_cost_usd": d.AvgCostUSD, "description": d.Description,
		}).ToSQL()
		if err == nil {
			_, err = pgClient.DB().ExecContext(ctx, query, args...)
		}
		if err != nil {
			log.Printf("Failed to create destination %s: %v", d.Name, err)
		}
	}

	// 3. Seed a few reservations across statuses so the dashboard has data
	statuses := []entities.ReservationStatus{
		entities.ReservationStatusPending,
		entities.ReservationStatusConfirmed,
		entities.ReservationStatusPaid,
		entities.ReservationStatusCancelled,
	}

	for i, status := range statuses {
		owner := users[2+(i%3)]
		destination := destinations[i%len(destinations)]
		checkIn := now.AddDate(0, 1+i, 0)
		checkOut := checkIn.AddDate(0, 0, 3+i)
		nights := int(checkOut.Sub(checkIn).Hours() / 24)

		query, args, err := db.Insert("reservations").Rows(goqu.Record{
			"id":             uuid.New().String(),
			"user_id":        owner.ID,
			"destination_id": destination.ID,
			"status":         status,
			"check_in":       checkIn,
			"check_out":      checkOut,
			"total_amount":   destination.AvgCostUSD * float64(nights),
			"created_at":     now.AddDate(0, -i, 0),
			"updated_at":     now,
		}).ToSQL()
		if err == nil {
			_, err = pgClient.DB().ExecContext(ctx, query, args...)
		}
		if err != nil {
			log.Printf("Failed to create reservation for %s: %v", owner.Email, err)
		}
	}

	log.Printf("Seeded %d users, %d destinations, %d reservations", len(users), len(destinations), len(statuses))
}
