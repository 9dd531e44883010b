package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Project  ProjectSvcFacade
	Expense  ExpenseSvcFacade
	Payment  PaymentSvcFacade
	Overview OverviewSvc
	Life     LifeSvc
	Discount DiscountSvc
	Estimate EstimateSvc
	Settings SettingsSvc
	Backup   BackupSvc
	Sheets   SheetsSvc
	Auth     AuthSvc
}
