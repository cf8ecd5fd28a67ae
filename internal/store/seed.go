package store

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"retailmedia-backend/internal/model"
)

// SeedStores returns the static retail locations.
func SeedStores() []model.Store {
	return []model.Store{
		{
			ID: "store-001", Name: "Loja Manaus Centro",
			Address: "Av. Eduardo Ribeiro, 520 - Centro",
			City:    "Manaus", State: "AM", PostalCode: "69010-010",
			Phone: "(92) 3232-9900", Size: model.SizeLarge, FootTraffic: 2500,
			Hours: model.OpeningHours{Weekdays: "09:00 - 19:00", Saturday: "09:00 - 18:00", Sunday: "12:00 - 17:00"},
			Lat:   -3.1313, Lng: -60.0231,
			Sectors: []model.StoreSector{model.SectorEletronicos, model.SectorTelefonia, model.SectorLinhaBranca, model.SectorMoveis},
		},
		{
			ID: "store-002", Name: "Loja Shopping Manauara",
			Address: "Av. Mário Ypiranga, 1300 - Adrianópolis",
			City:    "Manaus", State: "AM", PostalCode: "69057-002",
			Phone: "(92) 3232-9950", Size: model.SizeMedium, FootTraffic: 3000,
			Hours: model.OpeningHours{Weekdays: "10:00 - 22:00", Saturday: "10:00 - 22:00", Sunday: "14:00 - 20:00"},
			Lat:   -3.1003, Lng: -60.0233,
			Sectors: []model.StoreSector{model.SectorTelefonia, model.SectorEletronicos, model.SectorModa},
		},
		{
			ID: "store-003", Name: "Loja Cidade Nova",
			Address: "Av. Noel Nutels, 1762 - Cidade Nova",
			City:    "Manaus", State: "AM", PostalCode: "69095-000",
			Phone: "(92) 3232-9930", Size: model.SizeLarge, FootTraffic: 2200,
			Hours: model.OpeningHours{Weekdays: "09:00 - 19:00", Saturday: "09:00 - 18:00", Sunday: "09:00 - 15:00"},
			Lat:   -3.0413, Lng: -59.9478,
			Sectors: []model.StoreSector{model.SectorSalao, model.SectorEletrodomesticos, model.SectorCamaMesaBanho, model.SectorAlimentos},
		},
		{
			ID: "store-004", Name: "Loja Boa Vista",
			Address: "Av. Ville Roy, 1725 - Caçari",
			City:    "Boa Vista", State: "RR", PostalCode: "69307-725",
			Phone: "(95) 3628-4300", Size: model.SizeMedium, FootTraffic: 1800,
			Hours: model.OpeningHours{Weekdays: "09:00 - 19:00", Saturday: "09:00 - 18:00", Sunday: "09:00 - 15:00"},
			Lat:   2.8235, Lng: -60.6758,
			Sectors: []model.StoreSector{model.SectorSalao, model.SectorLinhaBranca, model.SectorModa},
		},
		{
			ID: "store-005", Name: "Loja Porto Velho",
			Address: "Av. Carlos Gomes, 1223 - Centro",
			City:    "Porto Velho", State: "RO", PostalCode: "76801-123",
			Phone: "(69) 3216-3900", Size: model.SizeMedium, FootTraffic: 1600,
			Hours: model.OpeningHours{Weekdays: "09:00 - 19:00", Saturday: "09:00 - 18:00", Sunday: "Fechado"},
			Lat:   -8.7608, Lng: -63.9004,
			Sectors: []model.StoreSector{model.SectorAutosservico, model.SectorEletronicos, model.SectorMoveis},
		},
	}
}

// SeedSpaces returns the static advertising space catalog.
func SeedSpaces() []model.Space {
	return []model.Space{
		{
			ID: "space-001", Name: "Endcap Premium",
			Description: "Ponto de exposição na ponta de gôndola em áreas de alto tráfego, ideal para lançamentos de produtos.",
			Type:        model.TypeEndcap,
			StoreID:     "store-001", StoreName: "Loja Manaus Centro", City: "Manaus", Sector: model.SectorEletronicos,
			Price:  8000,
			Images: []string{"https://images.unsplash.com/photo-1567103472667-6898f3a79cf2"},
			Status: model.StatusAvailable, ExposurePotential: 5000, OccupancyRate: 85,
		},
		{
			ID: "space-002", Name: "Display Digital 55\"",
			Description: "Tela digital de 55 polegadas localizada em pontos estratégicos da loja para exibição de anúncios.",
			Type:        model.TypeDigitalScreen,
			StoreID:     "store-002", StoreName: "Loja Shopping Manauara", City: "Manaus", Sector: model.SectorTelefonia,
			Price:  5500,
			Images: []string{"https://images.unsplash.com/photo-1581091877018-dac6a371d50f"},
			Status: model.StatusAvailable, ExposurePotential: 6000, OccupancyRate: 75,
		},
		{
			ID: "space-003", Name: "Vitrine Principal",
			Description: "Vitrine de destaque voltada para a entrada principal, com visibilidade máxima para quem passa.",
			Type:        model.TypeWindow,
			StoreID:     "store-001", StoreName: "Loja Manaus Centro", City: "Manaus", Sector: model.SectorModa,
			Price:  9500,
			Images: []string{"https://images.unsplash.com/photo-1441986300917-64674bd600d8"},
			Status: model.StatusAvailable, ExposurePotential: 7500, OccupancyRate: 90,
		},
		{
			ID: "space-004", Name: "Display de Chão Setor Salão",
			Description: "Estrutura de chão para material promocional no corredor central do salão de vendas.",
			Type:        model.TypeFloorStanding,
			StoreID:     "store-003", StoreName: "Loja Cidade Nova", City: "Manaus", Sector: model.SectorSalao,
			Price:  950,
			Images: []string{"https://images.unsplash.com/photo-1555529669-e69e7aa0ba9a"},
			Status: model.StatusAvailable, ExposurePotential: 2000, OccupancyRate: 60,
		},
		{
			ID: "space-005", Name: "Painel Checkout",
			Description: "Espaço publicitário junto aos caixas, alcançando todos os clientes no momento do pagamento.",
			Type:        model.TypeCheckout,
			StoreID:     "store-004", StoreName: "Loja Boa Vista", City: "Boa Vista", Sector: model.SectorSalao,
			Price:  2200,
			Images: []string{"https://images.unsplash.com/photo-1556742049-0cfed4f6a45d"},
			Status: model.StatusReserved, ExposurePotential: 3500, OccupancyRate: 95,
		},
		{
			ID: "space-006", Name: "Portal de Entrada",
			Description: "Adesivação e banners no portal de entrada da loja, primeira impressão de todos os visitantes.",
			Type:        model.TypeEntrance,
			StoreID:     "store-005", StoreName: "Loja Porto Velho", City: "Porto Velho", Sector: model.SectorAutosservico,
			Price:  3800,
			Images: []string{"https://images.unsplash.com/photo-1555529771-835f59fc5efe"},
			Status: model.StatusHighDemand, ExposurePotential: 4200, OccupancyRate: 100,
		},
		{
			ID: "space-007", Name: "Endcap Linha Branca",
			Description: "Ponta de gôndola no setor de linha branca, próxima às geladeiras e lavadoras em exposição.",
			Type:        model.TypeEndcap,
			StoreID:     "store-004", StoreName: "Loja Boa Vista", City: "Boa Vista", Sector: model.SectorLinhaBranca,
			Price:  1800,
			Images: []string{"https://images.unsplash.com/photo-1571175443880-49e1d25b2bc5"},
			Status: model.StatusAvailable, ExposurePotential: 2800, OccupancyRate: 70,
		},
		{
			ID: "space-008", Name: "Display Digital Telefonia",
			Description: "Tela vertical no corredor de telefonia, conteúdo dinâmico em rotação programável.",
			Type:        model.TypeDigitalScreen,
			StoreID:     "store-001", StoreName: "Loja Manaus Centro", City: "Manaus", Sector: model.SectorTelefonia,
			Price:  2900,
			Images: []string{"https://images.unsplash.com/photo-1512428559087-560fa5ceab42"},
			Status: model.StatusReserved, ExposurePotential: 3100, OccupancyRate: 88,
		},
		{
			ID: "space-009", Name: "Vitrine Shopping",
			Description: "Vitrine externa voltada ao corredor do shopping, tráfego intenso aos fins de semana.",
			Type:        model.TypeWindow,
			StoreID:     "store-002", StoreName: "Loja Shopping Manauara", City: "Manaus", Sector: model.SectorEletronicos,
			Price:  1000,
			Images: []string{"https://images.unsplash.com/photo-1567449303078-57ad995bd17f"},
			Status: model.StatusAvailable, ExposurePotential: 5200, OccupancyRate: 80,
		},
		{
			ID: "space-010", Name: "Display de Chão Alimentos",
			Description: "Ilha promocional no setor de alimentos, ideal para degustação e ativação de marca.",
			Type:        model.TypeFloorStanding,
			StoreID:     "store-003", StoreName: "Loja Cidade Nova", City: "Manaus", Sector: model.SectorAlimentos,
			Price:  3000,
			Images: []string{"https://images.unsplash.com/photo-1578916171728-46686eac8d58"},
			Status: model.StatusAvailable, ExposurePotential: 2600, OccupancyRate: 65,
		},
	}
}

// SeedReservations returns sample reservation history for the stubbed user,
// one per lifecycle state, so the dashboard has content in memory mode.
func SeedReservations(userID string) []model.Reservation {
	day := func(offset int) time.Time {
		return time.Now().UTC().AddDate(0, 0, offset)
	}
	contact := func() (string, string, string, string) {
		return "Tech Solutions LTDA", "Maria Silva", "maria@techsolutions.com", "(92) 98765-4321"
	}
	company, name, email, phone := contact()

	return []model.Reservation{
		{
			ID: "res-001", UserID: userID,
			StartDate: day(5), EndDate: day(35),
			Status: model.ReservationPending, TotalPrice: 8000, PaymentStatus: model.PaymentPending,
			CompanyName: company, ContactName: name, ContactEmail: email, ContactPhone: phone,
			Notes:     "Preferência por horário de maior movimento",
			CreatedAt: day(-2), UpdatedAt: day(-2),
			Spaces: []*model.Space{{ID: "space-001"}},
		},
		{
			ID: "res-002", UserID: userID,
			StartDate: day(-30), EndDate: day(0),
			Status: model.ReservationCompleted, TotalPrice: 5500, PaymentStatus: model.PaymentPaid,
			CompanyName: company, ContactName: name, ContactEmail: email, ContactPhone: phone,
			Notes:     "Campanha de lançamento de produto",
			CreatedAt: day(-60), UpdatedAt: day(0),
			Spaces: []*model.Space{{ID: "space-002"}},
		},
		{
			ID: "res-003", UserID: userID,
			StartDate: day(-15), EndDate: day(15),
			Status: model.ReservationConfirmed, TotalPrice: 8000, PaymentStatus: model.PaymentPaid,
			CompanyName: company, ContactName: name, ContactEmail: email, ContactPhone: phone,
			Notes:     "Campanha de férias",
			CreatedAt: day(-45), UpdatedAt: day(-15),
			Spaces: []*model.Space{{ID: "space-008"}},
		},
		{
			ID: "res-004", UserID: userID,
			StartDate: day(-60), EndDate: day(-30),
			Status: model.ReservationCancelled, TotalPrice: 5500, PaymentStatus: model.PaymentRefunded,
			CompanyName: company, ContactName: name, ContactEmail: email, ContactPhone: phone,
			Notes:     "Cancelado devido a mudança de estratégia",
			CreatedAt: day(-90), UpdatedAt: day(-60),
			Spaces: []*model.Space{{ID: "space-005"}},
		},
	}
}

// Seed upserts the static catalog into the database. It is idempotent and
// safe to run on every boot.
func Seed(ctx context.Context, db *gorm.DB) error {
	stores := SeedStores()
	log.Printf("Seeding %d stores...", len(stores))
	if err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "address", "city", "state", "postal_code", "phone", "size", "foot_traffic"}),
	}).Create(&stores).Error; err != nil {
		return fmt.Errorf("batch upsert stores failed: %w", err)
	}

	spaces := SeedSpaces()
	log.Printf("Seeding %d spaces...", len(spaces))
	if err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "description", "type", "store_id", "store_name", "city", "sector", "price", "exposure_potential", "occupancy_rate"}),
	}).Create(&spaces).Error; err != nil {
		return fmt.Errorf("batch upsert spaces failed: %w", err)
	}
	return nil
}
