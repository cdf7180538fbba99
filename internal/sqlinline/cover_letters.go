package sqlinline

const QInsertCoverLetter = `--sql ee7f8223-fc6b-4f5b-8ee6-361c3b282e90
insert into cover_letters (user_id, content, job_description, company_name, job_title, status)
values ($1::uuid, $2, $3, $4, $5, $6)
returning id, created_at;
`

const QListCoverLetters = `--sql 69bd8eda-3d99-4959-a01a-47f7adc8cdc1
select id, content, job_description, company_name, job_title, status, created_at, updated_at
from cover_letters
where user_id = $1::uuid
order by created_at desc;
`

const QSelectCoverLetter = `--sql a55cb86e-7e41-4ba1-83d0-57904cb453a0
select id, content, job_description, company_name, job_title, status, created_at, updated_at
from cover_letters
where id = $1::uuid
  and user_id = $2::uuid
limit 1;
`

const QDeleteCoverLetter = `--sql 777441f8-004a-49bc-aea3-d7721eec1a1e
delete from cover_letters
where id = $1::uuid
  and user_id = $2::uuid;
`
