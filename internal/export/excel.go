// Package export renders a day's schedule grid as an Excel workbook for
// offline review by the business.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"pricegrid/internal/models"
)

// DaySheet builds a workbook with one row per half-hour slot: time of day,
// tier, multiplier, half-hour price and availability.
func DaySheet(date time.Time, slots []models.TimeSlot, baseHourlyRate float64) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := date.UTC().Format("2006-01-02")
	f.SetSheetName("Sheet1", sheet)

	header := []string{"Time", "Tier", "Level", "Multiplier", "Price / 30 min", "Status", "Reason"}
	for i, col := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return nil, err
		}
	}

	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		startCell, _ := excelize.CoordinatesToCellName(1, 1)
		endCell, _ := excelize.CoordinatesToCellName(len(header), 1)
		_ = f.SetCellStyle(sheet, startCell, endCell, style)
	}

	for i, slot := range slots {
		tierName, level, multiplier := "Standard", 1, 1.0
		if slot.Tier != nil {
			tierName = slot.Tier.Name
			level = slot.Tier.TierLevel
			multiplier = slot.Tier.RateMultiplier
		}

		status := "available"
		switch {
		case slot.IsBlocked:
			status = "blocked"
		case slot.IsPast:
			status = "past"
		}

		row := []interface{}{
			fmt.Sprintf("%02d:%02d", slot.Hour, slot.Minute),
			tierName,
			level,
			multiplier,
			baseHourlyRate * multiplier / 2,
			status,
			slot.BlockReason,
		}
		for j, val := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}
