package fixture

import "github.com/kayacantekin/aidpanel/internal/domain"

// fixtureOrder keeps Resources() output stable.
var fixtureOrder = []string{
	"donations",
	"beneficiaries",
	"hospital-referrals",
	"tasks",
	"aid",
	"volunteers",
	"messages",
	"finance",
}

var fixtureData = map[string][]domain.Record{
	"donations": {
		{"id": "don-001", "donorName": "Ayşe Yılmaz", "amount": 500.0, "currency": "TRY", "category": "zakat", "status": "completed", "date": "2026-02-10T09:30:00Z"},
		{"id": "don-002", "donorName": "Mehmet Demir", "amount": 1250.0, "currency": "TRY", "category": "general", "status": "completed", "date": "2026-02-14T14:05:00Z"},
		{"id": "don-003", "donorName": "Fatma Kaya", "amount": 200.0, "currency": "TRY", "category": "education", "status": "pending", "date": "2026-02-20T18:45:00Z"},
		{"id": "don-004", "donorName": "Ali Çelik", "amount": 3000.0, "currency": "TRY", "category": "medical", "status": "completed", "date": "2026-02-25T11:20:00Z"},
	},
	"beneficiaries": {
		{"id": "ben-001", "name": "Zeynep Arslan", "familySize": 4, "city": "Ankara", "status": "active", "registeredAt": "2025-11-03T08:00:00Z"},
		{"id": "ben-002", "name": "Hasan Koç", "familySize": 6, "city": "İstanbul", "status": "active", "registeredAt": "2025-12-18T10:30:00Z"},
		{"id": "ben-003", "name": "Emine Şahin", "familySize": 2, "city": "İzmir", "status": "review", "registeredAt": "2026-01-22T13:15:00Z"},
	},
	"hospital-referrals": {
		{"id": "ref-001", "patientName": "Mustafa Aydın", "hospital": "Şehir Hastanesi", "department": "cardiology", "status": "scheduled", "referredAt": "2026-02-05T09:00:00Z"},
		{"id": "ref-002", "patientName": "Hatice Yıldız", "hospital": "Devlet Hastanesi", "department": "orthopedics", "status": "completed", "referredAt": "2026-01-28T11:40:00Z"},
	},
	"tasks": {
		{"id": "task-001", "title": "Gıda kolisi dağıtımı", "deadline": "2026-03-02T17:00:00Z", "priority": "high", "status": "in_progress", "assignee": "Elif Kara"},
		{"id": "task-002", "title": "Bağışçı raporu hazırla", "deadline": "2026-03-05T12:00:00Z", "priority": "medium", "status": "pending", "assignee": "Murat Öz"},
		{"id": "task-003", "title": "Hastane sevk takibi", "deadline": "2026-03-01T09:00:00Z", "priority": "urgent", "status": "pending", "assignee": "Elif Kara"},
	},
	"aid": {
		{"id": "aid-001", "type": "food", "beneficiaryId": "ben-001", "items": 12, "status": "delivered", "deliveredAt": "2026-02-12T15:00:00Z"},
		{"id": "aid-002", "type": "cash", "beneficiaryId": "ben-002", "amount": 750.0, "status": "approved", "deliveredAt": nil},
		{"id": "aid-003", "type": "clothing", "beneficiaryId": "ben-003", "items": 8, "status": "preparing", "deliveredAt": nil},
	},
	"volunteers": {
		{"id": "vol-001", "name": "Elif Kara", "role": "field", "city": "Ankara", "active": true, "joinedAt": "2025-06-01T00:00:00Z"},
		{"id": "vol-002", "name": "Murat Öz", "role": "office", "city": "Ankara", "active": true, "joinedAt": "2025-09-15T00:00:00Z"},
		{"id": "vol-003", "name": "Selin Acar", "role": "field", "city": "İstanbul", "active": false, "joinedAt": "2024-03-20T00:00:00Z"},
	},
	"messages": {
		{"id": "msg-001", "from": "Ayşe Yılmaz", "subject": "Bağış makbuzu", "body": "Makbuzumu alabilir miyim?", "read": false, "receivedAt": "2026-02-26T10:12:00Z"},
		{"id": "msg-002", "from": "Hasan Koç", "subject": "Teşekkür", "body": "Destekleriniz için teşekkürler.", "read": true, "receivedAt": "2026-02-24T16:48:00Z"},
	},
	"finance": {
		{"id": "fin-001", "type": "income", "amount": 4950.0, "category": "donations", "date": "2026-02-01T00:00:00Z"},
		{"id": "fin-002", "type": "expense", "amount": 1800.0, "category": "aid_delivery", "date": "2026-02-08T00:00:00Z"},
		{"id": "fin-003", "type": "expense", "amount": 620.0, "category": "logistics", "date": "2026-02-17T00:00:00Z"},
	},
}

var fixtureStats = map[string]domain.Record{
	"donations":          {"total": 4950.0, "count": 4, "monthlyTotal": 4950.0, "pendingCount": 1},
	"beneficiaries":      {"total": 3, "active": 2, "inReview": 1, "cities": 3},
	"hospital-referrals": {"total": 2, "scheduled": 1, "completed": 1},
	"tasks":              {"total": 3, "pending": 2, "inProgress": 1, "overdue": 0},
	"aid":                {"total": 3, "delivered": 1, "approved": 1, "preparing": 1},
	"volunteers":         {"total": 3, "active": 2, "field": 2, "office": 1},
	"messages":           {"total": 2, "unread": 1},
	"finance":            {"income": 4950.0, "expense": 2420.0, "balance": 2530.0},
}
