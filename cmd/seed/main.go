package main

import (
	"context"
	"medilab-service/internal/app/config"
	"medilab-service/internal/app/drivers/database"
	"medilab-service/internal/app/models"
	"medilab-service/internal/app/services/labtests"
	"medilab-service/internal/pkg/constvars"
	"medilab-service/internal/pkg/utils"
	"time"

	"github.com/sirupsen/logrus"
)

// Seeds a handful of lab orders in assorted lifecycle stages for local
// development. Safe to run repeatedly: duplicate barcodes are skipped.
func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	mongoDB := database.NewMongoDB(driverConfig)
	defer mongoDB.Disconnect(context.Background())

	repository := labtests.NewLabTestMongoRepository(
		mongoDB.Database(driverConfig.MongoDB.DbName),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now()
	collectionDate := now.Add(-2 * time.Hour)
	reportDate := now.Add(-30 * time.Minute)

	orders := []models.LabOrder{
		{
			Barcode:      utils.GenerateBarcode(internalConfig.Lab.BarcodePrefix),
			PatientRef:   "Patient/seed-001",
			PatientName:  "Amira Hartono",
			OrderedByRef: "Practitioner/seed-001",
			TestType:     "Complete Blood Count",
			TestCategory: "hematology",
			Priority:     constvars.LabPriorityRoutine,
			Status:       constvars.LabStatusOrdered,
		},
		{
			Barcode:      utils.GenerateBarcode(internalConfig.Lab.BarcodePrefix),
			PatientRef:   "Patient/seed-002",
			PatientName:  "Budi Santoso",
			OrderedByRef: "Practitioner/seed-002",
			TestType:     "Basic Metabolic Panel",
			TestCategory: "chemistry",
			Priority:     constvars.LabPriorityStat,
			Status:       constvars.LabStatusCollected,
			Specimen: &models.Specimen{
				Type:           "blood",
				Volume:         "5ml",
				Condition:      constvars.SpecimenConditionDefault,
				CollectedBy:    "Practitioner/seed-010",
				CollectionDate: collectionDate,
			},
		},
		{
			Barcode:      utils.GenerateBarcode(internalConfig.Lab.BarcodePrefix),
			PatientRef:   "Patient/seed-003",
			PatientName:  "Citra Wijaya",
			OrderedByRef: "Practitioner/seed-001",
			TestType:     "Potassium",
			TestCategory: "chemistry",
			Priority:     constvars.LabPriorityUrgent,
			Status:       constvars.LabStatusCompleted,
			Specimen: &models.Specimen{
				Type:           "blood",
				Volume:         "3ml",
				Condition:      constvars.SpecimenConditionDefault,
				CollectedBy:    "Practitioner/seed-010",
				CollectionDate: collectionDate,
			},
			TestParameters: []models.TestParameter{
				{Parameter: "K", Value: "7.2", Unit: "mmol/L", NormalRange: "3.5-5.0", Flag: constvars.LabFlagCritical},
			},
			OverallResult:  constvars.LabResultCritical,
			Interpretation: "Severe hyperkalemia, clinician notified",
			IsAbnormal:     true,
			IsCritical:     true,
			ReportDate:     &reportDate,
		},
	}

	seeded := 0
	for i := range orders {
		orders[i].CreatedAt = now
		orders[i].UpdatedAt = now
		_, err := repository.Create(ctx, &orders[i])
		if err != nil {
			logrus.Warnf("Skipping order for %s: %v", orders[i].PatientName, err)
			continue
		}
		seeded++
		logrus.Infof("Seeded %s order %s (%s)", orders[i].Status, orders[i].ID, orders[i].Barcode)
	}

	logrus.Infof("Seeding finished, %d/%d orders inserted", seeded, len(orders))
}
