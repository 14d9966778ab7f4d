package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Generator — интерфейс, чтобы мокать в тестах.
type Generator interface {
	GenerateReceipt(data ReceiptData) (string, error)
}

type ReceiptGenerator struct {
	RootDir  string // куда класть готовые PDF, например "./files/receipts"
	FontPath string // TTF с кириллицей, например "assets/fonts/DejaVuSans.ttf"
	fontName string
}

type ReceiptData struct {
	PaymentID         string
	ReservationID     int64
	AmountCents       int64
	Currency          string
	CardBrand         string
	CardLast4         string
	ProviderReference string
	ProcessedAt       time.Time
}

func NewReceiptGenerator(rootDir, fontPath string) *ReceiptGenerator {
	return &ReceiptGenerator{
		RootDir:  filepath.Clean(rootDir),
		FontPath: fontPath,
		fontName: "DejaVu",
	}
}

func (g *ReceiptGenerator) GenerateReceipt(data ReceiptData) (string, error) {
	absPath, err := g.ensureTarget(fmt.Sprintf("receipt_%s.pdf", data.PaymentID))
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Чек %s", data.PaymentID), false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)

	g.addFont(pdf)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 18)
	pdf.CellFormat(0, 10, "КАССОВЫЙ ЧЕК", "", 1, "C", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("от %s", data.ProcessedAt.Format("02.01.2006 15:04")), "", 1, "C", false, 0, "")
	g.hr(pdf)
	pdf.Ln(3)

	g.kvLine(pdf, "Платёж", data.PaymentID)
	g.kvLine(pdf, "Бронь", fmt.Sprintf("№%d", data.ReservationID))
	g.kvLine(pdf, "Сумма", fmt.Sprintf("%.2f %s", float64(data.AmountCents)/100, data.Currency))
	g.kvLine(pdf, "Карта", fmt.Sprintf("%s **** %s", data.CardBrand, data.CardLast4))
	g.kvLine(pdf, "Референс банка", data.ProviderReference)
	pdf.Ln(2)
	g.hr(pdf)

	pdf.SetFont(g.fontName, "", 10)
	pdf.MultiCell(0, 5, "Оплата проведена через тестовый банковский шлюз. Чек сформирован автоматически и действителен без подписи.", "", "L", false)

	if err := pdf.OutputFileAndClose(absPath); err != nil {
		return "", fmt.Errorf("write receipt pdf: %w", err)
	}
	return absPath, nil
}

// ===== helpers =====

func (g *ReceiptGenerator) ensureTarget(filename string) (string, error) {
	if err := os.MkdirAll(g.RootDir, 0o755); err != nil {
		return "", fmt.Errorf("create receipts dir: %w", err)
	}
	filename = filepath.Base(filename) // безопасность
	return filepath.Join(g.RootDir, filename), nil
}

func (g *ReceiptGenerator) addFont(pdf *gofpdf.Fpdf) {
	if _, err := os.Stat(g.FontPath); err != nil {
		// без TTF кириллица не выйдет, но чек всё равно соберём
		g.fontName = "Helvetica"
		return
	}
	pdf.AddUTF8Font(g.fontName, "", g.FontPath)
	pdf.AddUTF8Font(g.fontName, "B", g.FontPath)
}

func (g *ReceiptGenerator) kvLine(pdf *gofpdf.Fpdf, key, val string) {
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(45, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, val, "", 1, "L", false, 0, "")
}

func (g *ReceiptGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}
