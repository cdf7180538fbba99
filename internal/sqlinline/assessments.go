package sqlinline

const QInsertAssessment = `--sql 694532d5-4e03-4ecd-96e3-f75ea55d130d
insert into assessments (user_id, quiz_score, questions, category, improvement_tip)
values ($1::uuid, $2, $3, $4, $5)
returning id, created_at;
`

const QListAssessments = `--sql 200f2c15-078c-4ba9-aac0-beeca0dfbff4
select id, quiz_score, questions, category, improvement_tip, created_at
from assessments
where user_id = $1::uuid
order by created_at desc;
`
