package ledger

import "sort"

// Service is a fixed-price billable item payable by debiting an account.
type Service struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Price Money  `json:"price"`
}

// defaultServices seeds the static catalog. Prices are in AOA minor
// units; the catalog is not persisted and is rebuilt on every start.
func defaultServices() map[int]Service {
	return map[int]Service{
		101: {ID: 101, Name: "Agua", Price: 500000},
		102: {ID: 102, Name: "Electricidade", Price: 750000},
		103: {ID: 103, Name: "Internet", Price: 1000000},
		104: {ID: 104, Name: "Telefone", Price: 300000},
		105: {ID: 105, Name: "Gas", Price: 400000},
	}
}

// Services returns the catalog in ascending id order for display.
func (b *Bank) Services() []Service {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Service, 0, len(b.services))
	for _, svc := range b.services {
		out = append(out, svc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
