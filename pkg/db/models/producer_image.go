package models

// ProducerImage is one stamp/art image in a producer's collection. Producer
// is a grouping key, not a foreign key to a producers table.
type ProducerImage struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Producer  string `gorm:"column:produtora;not null;index" json:"produtora"`
	ImageName string `gorm:"column:imagem_nome;not null" json:"imagem_nome"`
}

// TableName maps ProducerImage onto the legacy produtora_imagens table.
func (ProducerImage) TableName() string {
	return "produtora_imagens"
}
