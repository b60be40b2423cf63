package allocation

import (
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Transaction is the immutable record of one executed buy or sell.
// Shares is positive for a buy and negative for a sell; Price is the
// execution price (the ask for buys, the bid for sells), never the market
// price.
type Transaction struct {
	Ticker string    `json:"ticker"`
	Shares Quantity  `json:"shares"`
	Price  Money     `json:"price"`
	Time   time.Time `json:"time"`
}

// IsBuy reports whether the transaction added shares.
func (t Transaction) IsBuy() bool { return t.Shares.IsPositive() }

// Amount returns the cash moved by the transaction, always positive:
// spent on a buy, received on a sell.
func (t Transaction) Amount() Money { return t.Price.Mul(t.Shares.Abs()) }

func (t Transaction) String() string {
	if t.IsBuy() {
		return fmt.Sprintf("bought %s %s at %s", t.Shares, t.Ticker, t.Price)
	}
	return fmt.Sprintf("sold %s %s at %s", t.Shares.Abs(), t.Ticker, t.Price)
}

// TransactionLog is the append-only record of the trades executed during a
// command. Transactions are kept in execution order.
type TransactionLog struct {
	transactions []Transaction
}

// NewTransactionLog creates an empty log.
func NewTransactionLog() *TransactionLog {
	return &TransactionLog{}
}

// Append records one more transaction at the end of the log.
func (l *TransactionLog) Append(txs ...Transaction) {
	l.transactions = append(l.transactions, txs...)
}

// Len returns the number of recorded transactions.
func (l *TransactionLog) Len() int { return len(l.transactions) }

// All returns an iterator over the transactions in execution order.
func (l *TransactionLog) All() iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i, tx := range l.transactions {
			if !yield(i, tx) {
				return
			}
		}
	}
}

// Encode writes the log to w in JSONL format, one transaction per line.
func (l *TransactionLog) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	for _, tx := range l.transactions {
		if err := enc.Encode(tx); err != nil {
			return fmt.Errorf("could not encode transaction %v: %w", tx, err)
		}
	}
	return nil
}
