// 演示组合数据加载器：写入一批有代表性的客户/供应商敞口样本，
// 已存在 app_number 数据时跳过。
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/wyfcoding/pkg/idgen"
	"github.com/wyfcoding/pkg/logging"
	gorm_mysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/wyfcoding/dealflow/internal/deal/domain"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "configs/intake/config.toml", "path to config file")
	flag.Parse()

	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Sprintf("read config failed: %v", err))
	}

	logger := logging.NewLogger("seed", "main", viper.GetString("log.level"))
	slog.SetDefault(logger.Logger)

	db, err := gorm.Open(gorm_mysql.Open(viper.GetString("database.source")), &gorm.Config{})
	if err != nil {
		panic(fmt.Sprintf("connect db failed: %v", err))
	}
	if err := db.AutoMigrate(&domain.Deal{}, &domain.DealEvent{}); err != nil {
		panic(fmt.Sprintf("migrate db failed: %v", err))
	}

	var existing int64
	db.Model(&domain.Deal{}).Where("app_number IS NOT NULL").Count(&existing)
	if existing > 0 {
		slog.Info("demo portfolio already seeded, skipping", "deals", existing)
		return
	}

	deals := buildDeals()
	if err := db.Create(&deals).Error; err != nil {
		panic(fmt.Sprintf("seed deals failed: %v", err))
	}
	slog.Info("demo portfolio seeded", "deals", len(deals))
}

type dealParams struct {
	appNumber     int
	appStatus     string
	customer      string
	vendor        string
	format        string
	lessor        string
	manager       string
	equipCategory string
	equipType     string
	equipYear     int
	equipCost     float64
	grossContract float64
	netInvest     float64
	monthly       float64
	term          int
	made          int
	remaining     int
	bookingMonths int // 相对当前的月数偏移；0 表示未预订
	finalMonths   int
	creditRating  string
	province      string
	industry      string
	isActive      bool
	nsfCount      int
	lastNsfDays   int // 相对当前的天数偏移；0 表示无 NSF
	daysPastDue   int
	past1         float64
	past31        float64
	past61        float64
	past91        float64
}

func makeDeal(p dealParams) domain.Deal {
	now := time.Now().UTC()

	status := domain.StatusReceived
	if p.appStatus == domain.AppStatusFunded || p.appStatus == domain.AppStatusPaidOff {
		status = domain.StatusNotified
	}

	d := domain.Deal{
		DealID:                   fmt.Sprintf("DEAL-%d", idgen.GenID()),
		CorrelationID:            fmt.Sprintf("CORR-%d", idgen.GenID()),
		AppNumber:                &p.appNumber,
		AppStatus:                &p.appStatus,
		CustomerLegalName:        &p.customer,
		PrimaryVendor:            &p.vendor,
		DealFormat:               &p.format,
		Lessor:                   &p.lessor,
		AccountManager:           &p.manager,
		PrimaryEquipmentCategory: &p.equipCategory,
		EquipmentType:            p.equipType,
		EquipmentYear:            p.equipYear,
		Amount:                   decimal.NewFromFloat(p.equipCost),
		TermMonths:               p.term,
		Industry:                 p.industry,
		Province:                 p.province,
		CreditRating:             p.creditRating,
		Status:                   status,
		EquipmentCost:            decimal.NewFromFloat(p.equipCost),
		GrossContract:            decimal.NewFromFloat(p.grossContract),
		NetInvest:                decimal.NewFromFloat(p.netInvest),
		MonthlyPayment:           decimal.NewFromFloat(p.monthly),
		PaymentsMade:             p.made,
		RemainingPayments:        p.remaining,
		IsActive:                 p.isActive,
		NsfCount:                 p.nsfCount,
		DaysPastDue:              p.daysPastDue,
		Past1:                    decimal.NewFromFloat(p.past1),
		Past31:                   decimal.NewFromFloat(p.past31),
		Past61:                   decimal.NewFromFloat(p.past61),
		Past91:                   decimal.NewFromFloat(p.past91),
	}

	if p.bookingMonths != 0 {
		booking := now.AddDate(0, p.bookingMonths, 0)
		final := now.AddDate(0, p.finalMonths, 0)
		d.BookingDate = &booking
		d.FinalPaymentDate = &final
	}
	if p.lastNsfDays != 0 {
		lastNsf := now.AddDate(0, 0, p.lastNsfDays)
		d.LastNsfDate = &lastNsf
	}

	return d
}

func buildDeals() []domain.Deal {
	const (
		repEdwin  = "Edwin Van Schepen"
		repDaniel = "Daniel De Luca"
		repSarah  = "Sarah Mitchell"
		repJames  = "James Wong"

		lessorMHCCL = "MHCCL"
		lessorMHCCA = "MHCCA"
	)

	return []domain.Deal{
		// 高敞口客户：TransCanada Hauling Ltd.（约 $535K 活跃，FullReview 不到，压在 Enhanced 上方）
		makeDeal(dealParams{appNumber: 119001, appStatus: domain.AppStatusFunded, customer: "TransCanada Hauling Ltd.", vendor: "National Truck Centre Inc.",
			format: domain.DealFormatVendor, lessor: lessorMHCCL, manager: repEdwin, equipCategory: "Transportation (TRAN)",
			equipType: "Semi-Truck (Kenworth T680)", equipYear: 2024, equipCost: 185000, grossContract: 234500,
			netInvest: 195000, monthly: 4885.42, term: 48, made: 12, remaining: 36, bookingMonths: -12, finalMonths: 36,
			creditRating: "CR2", province: "ON", industry: "Transportation",
			isActive: true, nsfCount: 2, lastNsfDays: -90}),
		makeDeal(dealParams{appNumber: 119002, appStatus: domain.AppStatusFunded, customer: "TransCanada Hauling Ltd.", vendor: "National Truck Centre Inc.",
			format: domain.DealFormatVendor, lessor: lessorMHCCL, manager: repEdwin, equipCategory: "Transportation (TRAN)",
			equipType: "Semi-Truck (Peterbilt 579)", equipYear: 2023, equipCost: 175000, grossContract: 221800,
			netInvest: 185000, monthly: 4620.83, term: 48, made: 18, remaining: 30, bookingMonths: -18, finalMonths: 30,
			creditRating: "CR2", province: "ON", industry: "Transportation",
			isActive: true, nsfCount: 1, lastNsfDays: -180}),
		makeDeal(dealParams{appNumber: 119003, appStatus: domain.AppStatusFunded, customer: "TransCanada Hauling Ltd.", vendor: "Fleet Equipment Corp.",
			format: domain.DealFormatVendor, lessor: lessorMHCCA, manager: repEdwin, equipCategory: "Transportation (TRAN)",
			equipType: "Dry Van Trailer (Utility 4000D-X)", equipYear: 2024, equipCost: 56400, grossContract: 71371,
			netInvest: 58143, monthly: 1486.69, term: 48, made: 6, remaining: 42, bookingMonths: -6, finalMonths: 42,
			creditRating: "CR2", province: "ON", industry: "Transportation", isActive: true}),
		makeDeal(dealParams{appNumber: 119004, appStatus: domain.AppStatusFunded, customer: "TransCanada Hauling Ltd.", vendor: "National Truck Centre Inc.",
			format: domain.DealFormatVendor, lessor: lessorMHCCL, manager: repEdwin, equipCategory: "Transportation (TRAN)",
			equipType: "Reefer Trailer (Carrier X4 7500)", equipYear: 2025, equipCost: 92000, grossContract: 116560,
			netInvest: 97300, monthly: 2427.50, term: 48, made: 2, remaining: 46, bookingMonths: -2, finalMonths: 46,
			creditRating: "CR2", province: "ON", industry: "Transportation",
			isActive: true, daysPastDue: 45, past31: 2427.50}),
		makeDeal(dealParams{appNumber: 118500, appStatus: domain.AppStatusPaidOff, customer: "TransCanada Hauling Ltd.", vendor: "National Truck Centre Inc.",
			format: domain.DealFormatVendor, lessor: lessorMHCCL, manager: repEdwin, equipCategory: "Transportation (TRAN)",
			equipType: "Semi-Truck (Freightliner Cascadia)", equipYear: 2020, equipCost: 155000, grossContract: 196350,
			netInvest: 0, monthly: 4090.63, term: 48, made: 48, remaining: 0, bookingMonths: -52, finalMonths: -4,
			creditRating: "CR2", province: "ON", industry: "Transportation", isActive: false}),
		makeDeal(dealParams{appNumber: 118501, appStatus: domain.AppStatusPaidOff, customer: "TransCanada Hauling Ltd.", vendor: "Fleet Equipment Corp.",
			format: domain.DealFormatVendor, lessor: lessorMHCCA, manager: repDaniel, equipCategory: "Transportation (TRAN)",
			equipType: "Flatbed Trailer (Fontaine Revolution)", equipYear: 2019, equipCost: 48000, grossContract: 60800,
			netInvest: 0, monthly: 1266.67, term: 48, made: 48, remaining: 0, bookingMonths: -54, finalMonths: -6,
			creditRating: "CR2", province: "ON", industry: "Transportation", isActive: false}),

		// 中敞口：Excavation Pro Québec Inc.（约 $476K 活跃，Enhanced）
		makeDeal(dealParams{appNumber: 119010, appStatus: domain.AppStatusFunded, customer: "Excavation Pro Québec Inc.", vendor: "Strongco Corporation",
			format: domain.DealFormatVendor, lessor: lessorMHCCA, manager: repDaniel, equipCategory: "Construction (CONS)",
			equipType: "Excavator (CAT 320)", equipYear: 2024, equipCost: 210000, grossContract: 266000,
			netInvest: 222000, monthly: 5541.67, term: 48, made: 10, remaining: 38, bookingMonths: -10, finalMonths: 38,
			creditRating: "CR3", province: "QC", industry: "Construction", isActive: true}),
		makeDeal(dealParams{appNumber: 119011, appStatus: domain.AppStatusFunded, customer: "Excavation Pro Québec Inc.", vendor: "Strongco Corporation",
			format: domain.DealFormatVendor, lessor: lessorMHCCA, manager: repDaniel, equipCategory: "Construction (CONS)",
			equipType: "Wheel Loader (CAT 950M)", equipYear: 2023, equipCost: 145000, grossContract: 183700,
			netInvest: 153500, monthly: 3062.50, term: 60, made: 16, remaining: 44, bookingMonths: -16, finalMonths: 44,
			creditRating: "CR3", province: "QC", industry: "Construction",
			isActive: true, nsfCount: 1, lastNsfDays: -60}),
		makeDeal(dealParams{appNumber: 119012, appStatus: domain.AppStatusFunded, customer: "Excavation Pro Québec Inc.", vendor: "Équipements Nordiques Ltée",
			format: domain.DealFormatBroker, lessor: lessorMHCCA, manager: repDaniel, equipCategory: "Construction (CONS)",
			equipType: "Backhoe (John Deere 310SL)", equipYear: 2024, equipCost: 95000, grossContract: 120350,
			netInvest: 100500, monthly: 2510.42, term: 48, made: 4, remaining: 44, bookingMonths: -4, finalMonths: 44,
			creditRating: "CR3", province: "QC", industry: "Construction", isActive: true}),
		makeDeal(dealParams{appNumber: 118600, appStatus: domain.AppStatusPaidOff, customer: "Excavation Pro Québec Inc.", vendor: "Strongco Corporation",
			format: domain.DealFormatVendor, lessor: lessorMHCCA, manager: repDaniel, equipCategory: "Construction (CONS)",
			equipType: "Mini Excavator (Kubota KX040)", equipYear: 2019, equipCost: 55000, grossContract: 69700,
			netInvest: 0, monthly: 1937.50, term: 36, made: 36, remaining: 0, bookingMonths: -42, finalMonths: -6,
			creditRating: "CR3", province: "QC", industry: "Construction", isActive: false}),

		// 低敞口：Prairie Grain Services Ltd.（约 $116K 活跃，Standard）
		makeDeal(dealParams{appNumber: 119020, appStatus: domain.AppStatusFunded, customer: "Prairie Grain Services Ltd.", vendor: "Brandt Tractor Ltd.",
			format: domain.DealFormatVendor, lessor: lessorMHCCL, manager: repSarah, equipCategory: "Agriculture (AGRI)",
			equipType: "Grain Dryer (GSI TopDry 1228)", equipYear: 2025, equipCost: 68000, grossContract: 86150,
			netInvest: 72000, monthly: 1795.83, term: 48, made: 3, remaining: 45, bookingMonths: -3, finalMonths: 45,
			creditRating: "CR1", province: "SK", industry: "Agriculture", isActive: true}),
		makeDeal(dealParams{appNumber: 119021, appStatus: domain.AppStatusFunded, customer: "Prairie Grain Services Ltd.", vendor: "Brandt Tractor Ltd.",
			format: domain.DealFormatVendor, lessor: lessorMHCCL, manager: repSarah, equipCategory: "Agriculture (AGRI)",
			equipType: "Grain Auger (Convey-All BTS 1645)", equipYear: 2024, equipCost: 42000, grossContract: 53200,
			netInvest: 44500, monthly: 1479.17, term: 36, made: 8, remaining: 28, bookingMonths: -8, finalMonths: 28,
			creditRating: "CR1", province: "SK", industry: "Agriculture", isActive: true}),

		// 仅历史交易：Maritime Medical Supplies Inc.（$0 活跃）
		makeDeal(dealParams{appNumber: 117800, appStatus: domain.AppStatusPaidOff, customer: "Maritime Medical Supplies Inc.", vendor: "Medline Canada Corporation",
			format: domain.DealFormatVendor, lessor: lessorMHCCL, manager: repJames, equipCategory: "Medical (MED)",
			equipType: "MRI Scanner (Siemens Magnetom)", equipYear: 2018, equipCost: 320000, grossContract: 405440,
			netInvest: 0, monthly: 6757.33, term: 60, made: 60, remaining: 0, bookingMonths: -66, finalMonths: -6,
			creditRating: "CR1", province: "NS", industry: "Medical", isActive: false}),
		makeDeal(dealParams{appNumber: 117801, appStatus: domain.AppStatusPaidOff, customer: "Maritime Medical Supplies Inc.", vendor: "Medline Canada Corporation",
			format: domain.DealFormatVendor, lessor: lessorMHCCL, manager: repJames, equipCategory: "Medical (MED)",
			equipType: "Ultrasound System (GE Voluson)", equipYear: 2019, equipCost: 85000, grossContract: 107700,
			netInvest: 0, monthly: 2991.67, term: 36, made: 36, remaining: 0, bookingMonths: -42, finalMonths: -6,
			creditRating: "CR1", province: "NS", industry: "Medical", isActive: false}),
		makeDeal(dealParams{appNumber: 117802, appStatus: domain.AppStatusPaidOff, customer: "Maritime Medical Supplies Inc.", vendor: "Canadian Medical Equipment Ltd.",
			format: domain.DealFormatBroker, lessor: lessorMHCCA, manager: repJames, equipCategory: "Medical (MED)",
			equipType: "Patient Monitor (Philips IntelliVue)", equipYear: 2020, equipCost: 45000, grossContract: 57020,
			netInvest: 0, monthly: 1583.89, term: 36, made: 36, remaining: 0, bookingMonths: -40, finalMonths: -4,
			creditRating: "CR1", province: "NS", industry: "Medical", isActive: false}),

		// 问题客户：Coastal Demolition Corp.（约 $265K 活跃，Enhanced，NSF 频发）
		makeDeal(dealParams{appNumber: 119030, appStatus: domain.AppStatusFunded, customer: "Coastal Demolition Corp.", vendor: "Finning International Inc.",
			format: domain.DealFormatVendor, lessor: lessorMHCCL, manager: repSarah, equipCategory: "Construction (CONS)",
			equipType: "Demolition Excavator (Volvo EC380E)", equipYear: 2023, equipCost: 178000, grossContract: 225540,
			netInvest: 188500, monthly: 3760.00, term: 60, made: 14, remaining: 46, bookingMonths: -14, finalMonths: 46,
			creditRating: "CR4", province: "BC", industry: "Construction",
			isActive: true, nsfCount: 5, lastNsfDays: -15, daysPastDue: 62, past31: 3760.00, past61: 3760.00}),
		makeDeal(dealParams{appNumber: 119031, appStatus: domain.AppStatusFunded, customer: "Coastal Demolition Corp.", vendor: "Finning International Inc.",
			format: domain.DealFormatVendor, lessor: lessorMHCCL, manager: repSarah, equipCategory: "Construction (CONS)",
			equipType: "Skid Steer (Bobcat T770)", equipYear: 2024, equipCost: 72000, grossContract: 91220,
			netInvest: 76200, monthly: 1270.28, term: 72, made: 6, remaining: 66, bookingMonths: -6, finalMonths: 66,
			creditRating: "CR4", province: "BC", industry: "Construction",
			isActive: true, nsfCount: 2, lastNsfDays: -30, daysPastDue: 35, past31: 1270.28}),
		makeDeal(dealParams{appNumber: 118700, appStatus: domain.AppStatusPaidOff, customer: "Coastal Demolition Corp.", vendor: "Pacific Equipment Brokers",
			format: domain.DealFormatBroker, lessor: lessorMHCCL, manager: repSarah, equipCategory: "Construction (CONS)",
			equipType: "Concrete Crusher (MB BF90.3)", equipYear: 2020, equipCost: 55000, grossContract: 69700,
			netInvest: 0, monthly: 1937.50, term: 36, made: 36, remaining: 0, bookingMonths: -42, finalMonths: -6,
			creditRating: "CR4", province: "BC", industry: "Construction",
			isActive: false, nsfCount: 3, lastNsfDays: -240}),

		// 新客户：TechVault Solutions Inc.（约 $61K 活跃，Standard）
		makeDeal(dealParams{appNumber: 119040, appStatus: domain.AppStatusFunded, customer: "TechVault Solutions Inc.", vendor: "CDW Canada Corp.",
			format: domain.DealFormatVendor, lessor: lessorMHCCL, manager: repJames, equipCategory: "Technology (TECH)",
			equipType: "Server Rack (Dell PowerEdge R760)", equipYear: 2025, equipCost: 58000, grossContract: 73480,
			netInvest: 61400, monthly: 2041.11, term: 36, made: 1, remaining: 35, bookingMonths: -1, finalMonths: 35,
			creditRating: "CR2", province: "ON", industry: "Technology", isActive: true}),

		// 供应商多样性
		makeDeal(dealParams{appNumber: 119050, appStatus: domain.AppStatusFunded, customer: "Northern Logistics Group Inc.", vendor: "Fleet Equipment Corp.",
			format: domain.DealFormatBroker, lessor: lessorMHCCA, manager: repEdwin, equipCategory: "Transportation (TRAN)",
			equipType: "Refrigerated Truck (Isuzu NPR-HD)", equipYear: 2024, equipCost: 78000, grossContract: 98840,
			netInvest: 82600, monthly: 2057.50, term: 48, made: 8, remaining: 40, bookingMonths: -8, finalMonths: 40,
			creditRating: "CR2", province: "AB", industry: "Transportation", isActive: true}),
		makeDeal(dealParams{appNumber: 119051, appStatus: domain.AppStatusFunded, customer: "Northern Logistics Group Inc.", vendor: "National Truck Centre Inc.",
			format: domain.DealFormatVendor, lessor: lessorMHCCL, manager: repEdwin, equipCategory: "Transportation (TRAN)",
			equipType: "Box Truck (Hino 338)", equipYear: 2023, equipCost: 95000, grossContract: 120350,
			netInvest: 100600, monthly: 2510.42, term: 48, made: 14, remaining: 34, bookingMonths: -14, finalMonths: 34,
			creditRating: "CR2", province: "AB", industry: "Transportation",
			isActive: true, nsfCount: 1, lastNsfDays: -120}),
		makeDeal(dealParams{appNumber: 119060, appStatus: domain.AppStatusFunded, customer: "Alberta Earthworks Inc.", vendor: "Strongco Corporation",
			format: domain.DealFormatVendor, lessor: lessorMHCCL, manager: repSarah, equipCategory: "Construction (CONS)",
			equipType: "Motor Grader (CAT 140)", equipYear: 2024, equipCost: 320000, grossContract: 405440,
			netInvest: 338800, monthly: 6756.67, term: 60, made: 5, remaining: 55, bookingMonths: -5, finalMonths: 55,
			creditRating: "CR3", province: "AB", industry: "Construction", isActive: true}),

		// 管道中的申请（尚未放款，展示 AppStatus 取值）
		makeDeal(dealParams{appNumber: 119070, appStatus: domain.AppStatusCreditValidation, customer: "Québec Foresterie Ltée", vendor: "Équipements Nordiques Ltée",
			format: domain.DealFormatVendor, lessor: lessorMHCCA, manager: repDaniel, equipCategory: "Forestry (FOR)",
			equipType: "Forwarder (John Deere 1210G)", equipYear: 2025, equipCost: 420000,
			term: 60, creditRating: "CR3", province: "QC", industry: "Forestry", isActive: false}),
		makeDeal(dealParams{appNumber: 119071, appStatus: domain.AppStatusCreditReview, customer: "Québec Foresterie Ltée", vendor: "Strongco Corporation",
			format: domain.DealFormatVendor, lessor: lessorMHCCA, manager: repDaniel, equipCategory: "Forestry (FOR)",
			equipType: "Harvester (Komatsu 951XC)", equipYear: 2024, equipCost: 385000,
			term: 60, creditRating: "CR3", province: "QC", industry: "Forestry", isActive: false}),
		makeDeal(dealParams{appNumber: 119072, appStatus: domain.AppStatusAutoscoringDeclined, customer: "Smith & Sons Contracting Ltd.", vendor: "Finning International Inc.",
			format: domain.DealFormatVendor, lessor: lessorMHCCL, manager: repSarah, equipCategory: "Construction (CONS)",
			equipType: "Track Loader (CAT 299D3)", equipYear: 2024, equipCost: 98000,
			term: 48, creditRating: "CR5", province: "BC", industry: "Construction", isActive: false}),
	}
}
